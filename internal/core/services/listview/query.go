package listview

// Query is the view state a request asks for. Nil or zero fields leave
// the current state untouched.
type Query struct {
	Search   *string
	Filters  map[string]string
	Page     int
	PageSize int
}

func (q Query) WithFilter(name, value string) Query {
	if value == "" {
		return q
	}
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[name] = value
	q.Filters = filters
	return q
}
