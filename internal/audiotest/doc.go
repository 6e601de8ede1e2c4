// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test fixtures: synthetic MPEG audio bitstreams with
// valid headers and CRC words, and mock PCM sources.
//
// Nothing here decodes audio; payload contents are chosen by the test.
package audiotest
