package docbuilder

import (
	"github.com/beevik/etree"
)

const xmlDeclaration = `version="1.0" encoding="UTF-8"`

// prettyPrint serializes an indented copy of doc. The copy always declares
// UTF-8, which is what it is written in, whatever the input declared.
func prettyPrint(doc *etree.Document) ([]byte, error) {
	pretty := doc.Copy()
	declared := false
	for _, tok := range pretty.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			pi.Inst = xmlDeclaration
			declared = true
		}
	}
	if !declared {
		pretty.InsertChildAt(0, etree.NewProcInst("xml", xmlDeclaration))
	}
	pretty.Indent(2)
	return pretty.WriteToBytes()
}
