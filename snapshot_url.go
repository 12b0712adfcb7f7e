// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import (
	"bytes"
	"encoding/base64"
	"encoding/json"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// EncodeURL returns s as a compact token suitable for use in a URL: the JSON
// form of s, snappy compressed and base64url encoded without padding.
//
func (s *Snapshot) EncodeURL() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, "encode snapshot")
	}
	return base64.RawURLEncoding.EncodeToString(snappy.Encode(nil, data)), nil
}

// DecodeURL decodes a token produced by EncodeURL.
//
func DecodeURL(token string) (*Snapshot, error) {
	z, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, invalid("url token: %v", err)
	}
	data, err := snappy.Decode(nil, z)
	if err != nil {
		return nil, invalid("url token: %v", err)
	}
	return DecodeSnapshot(bytes.NewReader(data))
}
