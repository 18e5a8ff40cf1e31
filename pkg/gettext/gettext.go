// Package gettext converts localization documents to and from GNU MO
// catalogs. The namespace becomes the message context, the key the message
// id and the value the translation.
package gettext

import (
	"fmt"

	"github.com/chai2010/gettext-go/gettext/mo"

	"github.com/EchoTools/locresTools/pkg/locres"
)

// Marshal encodes doc as an MO catalog. Hashes are not carried over.
func Marshal(doc *locres.Document) []byte {
	f := &mo.File{
		Messages: make([]mo.Message, 0, doc.Len()),
	}
	for _, e := range doc.Entries() {
		f.Messages = append(f.Messages, mo.Message{
			MsgContext: e.Namespace,
			MsgId:      e.Key,
			MsgStr:     e.Value,
		})
	}
	return f.Data()
}

// Unmarshal decodes an MO catalog. The header entry is skipped.
func Unmarshal(data []byte) (*locres.Document, error) {
	f, err := mo.LoadData(data)
	if err != nil {
		return nil, fmt.Errorf("parse mo: %w", err)
	}

	doc := locres.NewDocument()
	for _, m := range f.Messages {
		if m.MsgId == "" {
			continue
		}
		doc.SetString(m.MsgContext, m.MsgId, m.MsgStr)
	}
	return doc, nil
}
