// Package spectre implements the stateless derivation pipeline.
//
// # Overview
//
// A result is derived in three stages:
//
//  1. UserKey: scrypt(userSecret, scope | #userName | userName) with N=32768, r=8, p=2
//     and a 64-byte output, used as an HMAC-SHA-256 key.
//  2. SiteKey: HMAC(userKey, scope | #siteName | siteName | counter [| #context | context]).
//  3. Render: site key value 0 picks a template of the result type; value i+1 picks a
//     character from the class named by template position i.
//
// Identicons are derived separately as HMAC(userSecret, userName) and index four glyph
// tables with the first MAC byte.
//
// # Versions
//
// Each version preserves a historical framing defect so previously generated results
// stay reproducible:
//
//   - V0, V1: the site name length is its character count, not its UTF-8 byte count.
//   - V0, V1, V2: the user name length is its character count.
//   - V0: site key bytes are widened to 16-bit big-endian values before rendering.
//
// Character counts are UTF-16 code units, the length the web implementation measured.
// All integers in salts are big-endian.
package spectre
