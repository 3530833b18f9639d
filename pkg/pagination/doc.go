// Package pagination provides sequential loading of the paginated order API.
//
// The upstream API has no total-page header; a page shorter than the limit
// marks the end of the collection. Page termination depends on the previous
// page's content, so pages are fetched one at a time in ascending order.
//
// Example usage:
//
//	c, _ := client.New(client.DefaultConfig(baseURL, apiKey))
//	loader := pagination.NewLoader(c, pagination.DefaultConfig())
//	result := loader.LoadAll(ctx)
//
// The loader:
//   - Starts at page 1 and stops after a failed, empty or short page
//   - Bounds each page request with its own timeout
//   - Never retries; a failed page returns the partial collection with Truncated set
//   - Logs per-page timing and a load summary
package pagination
