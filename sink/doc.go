// Package sink writes generated flatqa examples to their on-disk
// container files.
//
// A FileSink produces three files per split prefix:
//
//	<prefix>_questions.jsonl  one JSON record per example: question and
//	                          program token indices, answer, image index
//	<prefix>_features.bin     uvarint-length-prefixed encoded image blobs,
//	                          in example order
//	<prefix>_scenes.json      the full object records of every scene
//
// The vocabulary tables are written once per dataset as vocab.json,
// conventionally alongside the training split. MemorySink collects
// examples in memory for tests.
package sink
