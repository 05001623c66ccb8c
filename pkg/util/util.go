/*
Copyright 2018 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package util

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// WriteOutput writes content to the file at path, or to stdout if path is "-".
// A trailing newline is added so the output ends cleanly on a terminal.
func WriteOutput(path, content string) error {
	var file io.WriteCloser
	if path == "-" {
		file = os.Stdout
	} else {
		var err error
		file, err = os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", path)
		}
		defer file.Close()
	}

	if _, err := io.WriteString(file, content+"\n"); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// ReadLines returns the non-blank lines of the file at path, or of stdin if
// path is "-", with surrounding whitespace removed.
func ReadLines(path string) ([]string, error) {
	var file io.ReadCloser
	if path == "-" {
		file = os.Stdin
	} else {
		var err error
		file, err = os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", path)
		}
		defer file.Close()
	}

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return lines, nil
}
