// Package testutil provides fixtures and fakes for testing AnimAssist components.
//
// Key components:
//   - Container builders: byte-level skeleton and animation containers built
//     without going through the codecs under test
//   - Tree-format builders: minimal Havok XML packfile documents
//   - FakeTool: a recording stand-in for the external conversion tool
//
// All test data is built inline; no fixture files are read from disk.
package testutil
