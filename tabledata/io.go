// Copyright 2025 Sonic Labs
// This file is part of Radiant Monte Carlo Transport Library
//
// Radiant is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Radiant is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Radiant. If not, see <http://www.gnu.org/licenses/>.

package tabledata

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document.
type Format int

const (
	JSON Format = iota
	YAML
)

// formatOf derives the encoding of a document from its file name. A trailing
// .gz marks gzip compression.
func formatOf(filename string) (Format, bool, error) {
	name := strings.ToLower(filename)
	compressed := strings.HasSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".gz")
	switch filepath.Ext(name) {
	case ".json":
		return JSON, compressed, nil
	case ".yaml", ".yml":
		return YAML, compressed, nil
	default:
		return JSON, false, errors.Mark(errors.Newf("unknown document extension of %v", filename), ErrFormat)
	}
}

// Read reads a document from a .json, .yaml or .yml file, optionally gzip
// compressed with a trailing .gz.
func Read(filename string) (doc *Document, err error) {
	format, compressed, err := formatOf(filename)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening table file %v", filename)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)

	var r io.Reader = file
	if compressed {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create gzip reader for table file %v", filename)
		}
		defer func(gz *gzip.Reader) {
			err = errors.Join(err, gz.Close())
		}(gz)
		r = gz
	}
	doc, err = Decode(r, format)
	if err != nil {
		return nil, errors.Wrapf(err, "file %v", filename)
	}
	return doc, nil
}

// Decode reads a document and checks its file id.
func Decode(r io.Reader, format Format) (*Document, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed reading table document")
	}
	var doc Document
	switch format {
	case YAML:
		err = yaml.Unmarshal(contents, &doc)
	default:
		err = json.Unmarshal(contents, &doc)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "cannot unmarshal table document"), ErrFormat)
	}
	if doc.FileId != FileId {
		return nil, errors.Mark(errors.Newf("document is not a table document (file id %q)", doc.FileId), ErrFormat)
	}
	return &doc, nil
}

// Encode writes a document. An empty file id is set to FileId.
func Encode(w io.Writer, doc *Document, format Format) error {
	if doc.FileId == "" {
		doc.FileId = FileId
	}
	var out []byte
	var err error
	switch format {
	case YAML:
		out, err = yaml.Marshal(doc)
	default:
		out, err = json.MarshalIndent(doc, "", "    ")
	}
	if err != nil {
		return errors.Wrap(err, "failed to convert table document")
	}
	_, err = w.Write(out)
	return err
}

// Write writes a document to a file. The encoding follows the extension as
// for Read.
func Write(filename string, doc *Document) (err error) {
	format, compressed, err := formatOf(filename)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "cannot open table file %v", filename)
	}
	defer func(f *os.File) {
		err = errors.Join(err, f.Close())
	}(f)

	if !compressed {
		return Encode(f, doc, format)
	}
	gz := gzip.NewWriter(f)
	if err := Encode(gz, doc, format); err != nil {
		return errors.Join(err, gz.Close())
	}
	return gz.Close()
}
