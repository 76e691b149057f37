package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/screentocode/screen-to-code-backend/internal/figma_conversion/domain"
)

// Rendered exports are upscaled so vision models get pixel detail
// (anti-aliasing, shadows) the vector tree doesn't capture.
const exportScale = 2

// FetchResult is the soft-failure contract of the metadata fetcher. A nil
// Document with Mock set means the fetch degraded; the pipeline continues.
type FetchResult struct {
	Document     *Node
	FileName     string
	Version      string
	LastModified string
	ImageURL     string
	Mock         bool
}

// MetadataSource abstracts the design metadata API so the orchestrator stays
// free of credential-presence branching. Configured() false selects the mock
// branch; a configured source that fails degrades via FetchResult.Mock.
type MetadataSource interface {
	Configured() bool
	Fetch(ctx context.Context, ref domain.DesignReference) *FetchResult
}

// Client talks to the Figma REST API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

func NewClient(token, baseURL string) *Client {
	// Connection pooling tuned for large design files; HTTP/2 disabled to
	// avoid stream errors on big responses.
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   false,
	}

	return &Client{
		token:   token,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *Client) Configured() bool { return c.token != "" }

// Fetch retrieves the document tree and a rendered image for the reference.
// The two retrievals are independent and run concurrently; the image depends
// only on the reference, not on the document. Any network failure on either
// side is logged and converted to a degraded result, never an error: design
// import is a best-effort convenience, not a guaranteed contract.
func (c *Client) Fetch(ctx context.Context, ref domain.DesignReference) *FetchResult {
	var (
		wg       sync.WaitGroup
		res      FetchResult
		docErr   error
		imageErr error
		imageURL string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		docErr = c.fetchDocument(ctx, ref, &res)
	}()
	go func() {
		defer wg.Done()
		imageURL, imageErr = c.exportImage(ctx, ref)
	}()
	wg.Wait()

	if docErr != nil || imageErr != nil {
		if docErr != nil {
			log.Printf("[warn] operation=figma_fetch error=%v", docErr)
		}
		if imageErr != nil {
			log.Printf("[warn] operation=figma_image_export error=%v", imageErr)
		}
		return &FetchResult{Mock: true}
	}

	res.ImageURL = imageURL
	return &res
}

func (c *Client) fetchDocument(ctx context.Context, ref domain.DesignReference, out *FetchResult) error {
	if ref.NodeID != "" {
		nodes, err := c.getNodes(ctx, ref.FileKey, ref.NodeID)
		if err != nil {
			return err
		}
		out.FileName = nodes.Name
		out.Version = nodes.Version
		out.LastModified = nodes.LastModified
		if nd, ok := nodes.Nodes[ref.NodeID]; ok {
			doc := nd.Document
			out.Document = &doc
			return nil
		}
		return fmt.Errorf("node %s not found in file %s", ref.NodeID, ref.FileKey)
	}

	file, err := c.getFile(ctx, ref.FileKey)
	if err != nil {
		return err
	}
	out.FileName = file.Name
	out.Version = file.Version
	out.LastModified = file.LastModified
	out.Document = &file.Document
	return nil
}

func (c *Client) getFile(ctx context.Context, fileKey string) (*FileResponse, error) {
	var file FileResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/files/%s", c.baseURL, fileKey), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) getNodes(ctx context.Context, fileKey, nodeID string) (*NodesResponse, error) {
	var nodes NodesResponse
	url := fmt.Sprintf("%s/files/%s/nodes?ids=%s", c.baseURL, fileKey, nodeID)
	if err := c.getJSON(ctx, url, &nodes); err != nil {
		return nil, err
	}
	return &nodes, nil
}

func (c *Client) exportImage(ctx context.Context, ref domain.DesignReference) (string, error) {
	url := fmt.Sprintf("%s/images/%s?format=png&scale=%d", c.baseURL, ref.FileKey, exportScale)
	if ref.NodeID != "" {
		url += "&ids=" + ref.NodeID
	}

	var img ImageResponse
	if err := c.getJSON(ctx, url, &img); err != nil {
		return "", err
	}
	if img.Err != "" {
		return "", fmt.Errorf("image export failed: %s", img.Err)
	}

	if ref.NodeID != "" {
		if u, ok := img.Images[ref.NodeID]; ok && u != "" {
			return u, nil
		}
	}
	for _, u := range img.Images {
		if u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("no image rendered for file %s", ref.FileKey)
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("figma request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("figma API status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode figma response: %w", err)
	}
	return nil
}

// NullMetadataSource is the strategy used when no Figma credential is
// configured. Selecting it is an expected state, not an error.
type NullMetadataSource struct{}

func (NullMetadataSource) Configured() bool { return false }

func (NullMetadataSource) Fetch(ctx context.Context, ref domain.DesignReference) *FetchResult {
	return &FetchResult{FileName: "Mock Figma Design", Mock: true}
}
