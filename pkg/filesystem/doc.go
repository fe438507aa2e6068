// Package filesystem provides the filesystem hamstercage reads and writes.
//
// The FS interface covers exactly the calls the entry model needs: lstat
// based probing, ownership lookups that never follow symlinks, and a content
// copy that keeps modification times. NewOS returns the implementation
// backed by the operating system.
package filesystem
