// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"enigma/internal/jsonlutil"
	"enigma/internal/jsonutil"
	"enigma/internal/session"
	"enigma/pkg/api"
)

// StartJSONLWriter streams each message as one JSON line (v1).
func StartJSONLWriter(out io.Writer, _ Options, bufSize int) (chan<- session.Message, <-chan error) {
	return jsonlutil.Start[session.Message](out, bufSize,
		func(enc *json.Encoder, m session.Message) error {
			return enc.Encode(ToAPIMessage(m))
		},
		IsBrokenPipe,
	)
}

// StartJSONWriter collects every message and writes one indented JSON array (v1).
func StartJSONWriter(out io.Writer, _ Options, bufSize int) (chan<- session.Message, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan session.Message, bufSize)
	errCh := make(chan error, 1)

	go func() {
		list := []api.MessageV1{}
		for m := range in {
			list = append(list, ToAPIMessage(m))
		}
		err := jsonutil.EncodePretty(out, list)
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
