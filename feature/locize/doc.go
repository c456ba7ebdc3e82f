// Package locize implements the translation store on the locize API.
//
// Endpoints used:
//
//	GET  {base}/languages/{projectId}
//	GET  {base}/{projectId}/{version}/{lng}/{ns}
//	POST {base}/missing/{projectId}/{version}/{lng}/{ns}
//
// Only the missing endpoint needs the API key. Requests go through the
// fiber HTTP client.
package locize
