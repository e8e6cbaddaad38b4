/*
 * Copyright 2025 SOAPKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package xmldoc

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/beevik/etree"
	"github.com/icon-project/btp2/common/log"

	"github.com/soapkit/soap-sdk/soap"
)

func Logger(l log.Logger) log.Logger {
	return l.WithFields(log.Fields{log.FieldKeyModule: "xmldoc"})
}

// Document is the etree backed soap.Document.
type Document struct {
	d *etree.Document
}

func (d *Document) Name() string {
	root := d.d.Root()
	if root == nil {
		return ""
	}
	return root.Tag
}

func (d *Document) Text(path string) string {
	if e := d.d.FindElement(path); e != nil {
		return e.Text()
	}
	return ""
}

func (d *Document) WriteTo(w io.Writer) error {
	_, err := d.d.WriteTo(w)
	return err
}

func NewDocument(root string) *Document {
	d := etree.NewDocument()
	d.CreateElement(root)
	return &Document{d: d}
}

// Element appends a child element with the given text under the root and
// returns the document for chaining.
func (d *Document) Element(tag, text string) *Document {
	if root := d.d.Root(); root != nil {
		root.CreateElement(tag).SetText(text)
	}
	return d
}

type Parser struct {
	l log.Logger
}

func NewParser(l log.Logger) *Parser {
	return &Parser{l: Logger(l)}
}

func (p *Parser) Parse(r io.Reader) (soap.Document, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		p.l.Debugf("fail to io.ReadAll err:%+v", err)
		return nil, soap.ErrorCodeDecode.Wrapf(err, "fail to read document err:%s", err.Error())
	}
	// etree tokenizes without enforcing element nesting, so a mismatched or
	// unclosed tag must be rejected here before the document reaches a handler
	dec := xml.NewDecoder(bytes.NewReader(b))
	for {
		if _, err = dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			p.l.Debugf("fail to Token err:%+v", err)
			return nil, soap.ErrorCodeDecode.Wrapf(err, "fail to parse document err:%s", err.Error())
		}
	}
	d := etree.NewDocument()
	if err = d.ReadFromBytes(b); err != nil {
		p.l.Debugf("fail to ReadFromBytes err:%+v", err)
		return nil, soap.ErrorCodeDecode.Wrapf(err, "fail to parse document err:%s", err.Error())
	}
	if d.Root() == nil {
		return nil, soap.ErrorCodeDecode.Errorf("empty document")
	}
	return &Document{d: d}, nil
}
