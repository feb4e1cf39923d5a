package telemetry

// Attribute names recorded on ddg spans.
const (
	AttrInvocationID = "ddg.invocation.id" // one id per process run, also logged
	AttrBackend      = "ddg.backend"       // instant, advanced, operators, lite, images, news
	AttrQuery        = "ddg.query"         // truncated search query
	AttrRegion       = "ddg.region"
	AttrSafeSearch   = "ddg.safe_search"
	AttrLimit        = "ddg.limit"
	AttrResultCount  = "ddg.result.count"
	AttrSuccess      = "ddg.result.success"
	AttrError        = "ddg.result.error"
	AttrURL          = "ddg.http.url" // request URL with the vqd token redacted
)

// Span names.
const (
	SpanNameSearch     = "ddg.search"
	SpanNameHTTPClient = "http.client"
)
