/*
Package server implements msgpack IPC for the autocomplete service.

The server operates on a request/response model: clients send structured
msgpack messages via stdin and receive responses through stdout. Each message
carries an ID echoed back in the response, a command, and command-specific
fields.

Completion requests name a category and a prefix:

	{"id": "req_001", "cmd": "complete", "cat": "products", "p": "whey", "l": 10}

The server responds with matching entries plus timing info in microseconds:

	{"id": "req_001", "s": [{"w": "whey isolate"}, {"w": "whey protein"}], "c": 2, "t": 41}

Dataset refreshes are asynchronous; the response only acknowledges whether
the reload was accepted, since at most one runs per category at a time:

	{"id": "rel_001", "cmd": "reload", "cat": "products", "words": [...]}
	{"id": "rel_001", "ok": true}

"add" inserts a small batch without a full rebuild, "stats" reports entry
counts and the data directory, "health" answers with a status string.

Responses to malformed or unknown requests carry an error string and an
HTTP-flavored status code instead of terminating the session.
*/
package server

// Request is the envelope decoded for every incoming message.
type Request struct {
	ID       string   `msgpack:"id"`
	Command  string   `msgpack:"cmd"`
	Category string   `msgpack:"cat,omitempty"`
	Prefix   string   `msgpack:"p,omitempty"`
	Limit    int      `msgpack:"l,omitempty"`
	Words    []string `msgpack:"words,omitempty"`
}

// Suggestion is one completion entry.
type Suggestion struct {
	Word string `msgpack:"w"`
}

// CompletionResponse answers a complete request.
type CompletionResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"` // microseconds
}

// ReloadResponse acknowledges a reload request. Accepted is false when a
// rebuild for the category was already in flight.
type ReloadResponse struct {
	ID       string `msgpack:"id"`
	Accepted bool   `msgpack:"ok"`
}

// AckResponse acknowledges an add request.
type AckResponse struct {
	ID string `msgpack:"id"`
	OK bool   `msgpack:"ok"`
}

// StatsResponse answers a stats request for one category.
type StatsResponse struct {
	ID        string `msgpack:"id"`
	Entries   int    `msgpack:"n"`
	DataDir   string `msgpack:"dir"`
	Reloading bool   `msgpack:"rel"`
}

// StatusResponse answers health checks and signals readiness at startup.
type StatusResponse struct {
	Status string `msgpack:"status"`
}

// ErrorResponse reports a rejected request.
type ErrorResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Error  string `msgpack:"err"`
	Status int    `msgpack:"status"`
}
