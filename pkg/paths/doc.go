// Package paths maps between the three path spaces hamstercage deals with.
//
// A manifest key is the canonical form of an entry path: cleaned, with a
// single leading separator and no trailing one ("/etc/motd"). Keys are
// interpreted relative to two bases:
//
//   - the target directory, the live filesystem being managed
//   - the repository, where file content lives under tags/<tag>/
//
// User input is accepted in any of three spellings and reduced to a key by
// Resolver.Key: target prefixed ("<target>/etc/motd"), absolute
// ("/etc/motd") or relative ("etc/motd").
//
// The package also locates the XDG config directory used by pkg/config.
package paths
