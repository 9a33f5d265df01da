// Package qrc decodes the compiled resource tree that Qt's resource compiler
// links into an executable.
//
// # Table Layout
//
// The tree is spread over three tables, all big-endian:
//
// Struct table, one 14-byte record per node (node N at offset N*14):
//
//	directory: [NameOffset(4)][Flags(2)][ChildCount(4)][FirstChild(4)]
//	file:      [NameOffset(4)][Flags(2)][Country(2)][Language(2)][DataOffset(4)]
//
// Flags: 0x01 = compressed, 0x02 = directory. The children of a directory are
// the nodes FirstChild .. FirstChild+ChildCount-1. Node 0 is the root.
//
// Name table:
//
//	[Length(2)][Hash(4)][Name(Length*2), UTF-16BE]
//
// Payload table:
//
//	[Size(4)][Data(Size)]
//
// # Usage
//
//	res, err := qrc.Decode(qrc.Tables{
//	    Struct:  structBytes,
//	    Names:   nameBytes,
//	    Payload: payloadBytes,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range res.Problems {
//	    log.Println("problem:", p)
//	}
//	res.Walk(func(n *qrc.Node) error {
//	    if !n.IsDir() {
//	        fmt.Printf("%s (%d bytes)\n", n.Path, len(n.Data))
//	    }
//	    return nil
//	})
//
// Decode scans every node, not only those reachable from the root, so orphaned
// entries show up as additional top-level entries.
//
// # Error Handling
//
// A malformed node (MalformedTreeError) or a payload that fails to inflate
// (DecompressionError) drops that node and its subtree; siblings are still
// decoded and the failure is listed in Resources.Problems. Duplicate names at
// the same level overwrite earlier entries and are reported as
// DuplicateNameError. WithStrict turns node failures into a Decode error.
package qrc
