// Package filesystem provides the file access used by AnimAssist workflows.
//
// All implementations sit on afero so workflows run against the OS
// filesystem in production and an in-memory filesystem in tests.
package filesystem
