package instana

// Metric pairs a metric name with an aggregation method, e.g. latency/P95.
type Metric struct {
	Metric      string `json:"metric"`
	Aggregation string `json:"aggregation"`
}

// TimeFrame is the Instana time window: an end timestamp in epoch
// milliseconds and a window size in milliseconds reaching back from it.
type TimeFrame struct {
	To         int64 `json:"to"`
	WindowSize int64 `json:"windowSize"`
}

// Order controls result ordering for grouped metric queries.
type Order struct {
	By        string `json:"by"`
	Direction string `json:"direction"`
}

// Pagination bounds the number of groups returned.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// MetricsQuery is the request payload for the application-monitoring v2
// metrics endpoints (applications, services, endpoints).
type MetricsQuery struct {
	IncludeInternal  bool        `json:"includeInternal"`
	IncludeSynthetic bool        `json:"includeSynthetic"`
	Metrics          []Metric    `json:"metrics"`
	Order            *Order      `json:"order,omitempty"`
	Pagination       *Pagination `json:"pagination,omitempty"`
	TimeFrame        TimeFrame   `json:"timeFrame"`
}

// WebsiteMetricsQuery is the request payload for website-monitoring v2
// metrics. Type selects the beacon type, e.g. PAGELOAD.
type WebsiteMetricsQuery struct {
	Type      string    `json:"type,omitempty"`
	Metrics   []Metric  `json:"metrics"`
	Order     *Order    `json:"order,omitempty"`
	TimeFrame TimeFrame `json:"timeFrame"`
}

// InfraQuery is the request payload for infrastructure-monitoring metrics.
// Query is an Instana dynamic-focus query; Plugin selects the entity type.
type InfraQuery struct {
	Metrics   []string  `json:"metrics"`
	Plugin    string    `json:"plugin"`
	Query     string    `json:"query,omitempty"`
	Rollup    int       `json:"rollup,omitempty"`
	TimeFrame TimeFrame `json:"timeFrame"`
}
