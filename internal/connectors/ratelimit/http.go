package ratelimit

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps decoded response bodies.
const maxBodyBytes = 8 << 20

// GetJSON sends req through hc once the throttle allows it, classifies the
// response with Observe and decodes a successful body into out.
func (t *Throttle) GetJSON(hc *http.Client, req *http.Request, out any) error {
	if err := t.Wait(req.Context()); err != nil {
		return err
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request %s: %w", t.platform, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := t.Observe(resp); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("%s: decode %s: %w", t.platform, req.URL.Path, err)
	}
	return nil
}
