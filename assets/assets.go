// Package assets loads the shader sources the canvas needs before it starts
// rendering.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	shader "github.com/richinsley/glslcanvas/shader"
)

// Embedded holds the default shader assets, rooted so that the fragment
// shader lives at "shader/frag.glsl".
//
//go:embed shader
var Embedded embed.FS

// ErrFetch is returned when the fragment source cannot be retrieved.
var ErrFetch = errors.New("fetch failed")

// Resources are the inputs of the setup phase.
type Resources struct {
	VertexSource   string
	FragmentSource string
	// FragmentRef is where the fragment source came from.
	FragmentRef string
}

// Loader retrieves shader sources. The zero value uses http.DefaultClient and
// the embedded assets.
type Loader struct {
	Client  *http.Client
	Timeout time.Duration
	FS      fs.FS
}

// Load runs the asynchronous phase of startup: the vertex source is embedded,
// the fragment source is fetched from ref.
func (l *Loader) Load(ctx context.Context, ref string) (*Resources, error) {
	frag, err := l.Fragment(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &Resources{
		VertexSource:   shader.VertexSource,
		FragmentSource: frag,
		FragmentRef:    ref,
	}, nil
}

// Fragment returns the text at ref. An http or https URL is fetched with a
// GET request; anything else is read from the local filesystem first and
// then from the embedded assets.
func (l *Loader) Fragment(ctx context.Context, ref string) (string, error) {
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return l.fetch(ctx, u.String())
	}

	data, err := os.ReadFile(ref)
	if err == nil {
		log.Printf("Loaded fragment shader from %s", ref)
		return string(data), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	assets := l.FS
	if assets == nil {
		assets = Embedded
	}
	data, err = fs.ReadFile(assets, strings.TrimPrefix(ref, "/"))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrFetch, ref, err)
	}
	log.Printf("Loaded embedded fragment shader %s", ref)
	return string(data), nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) (string, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "text/plain, */*")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: bad response status: %s", ErrFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response body: %v", ErrFetch, err)
	}
	log.Printf("Fetched fragment shader from %s (%d bytes)", rawURL, len(body))
	return string(body), nil
}
