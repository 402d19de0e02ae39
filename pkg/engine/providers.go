package engine

// ContextProviders returns the per-request providers: the origin URL and
// the opaque host request.
func ContextProviders(req Request) []Provider {
	return []Provider{
		{Token: TokenOriginURL, Value: req.Origin},
		{Token: TokenRequest, Value: req.Data},
	}
}

// MergeProviders combines caller providers with context providers. Each
// list is taken once; a later binding for a token replaces the earlier
// value but keeps its position, so context providers win on collision.
func MergeProviders(providers, contextProviders []Provider) []Provider {
	out := make([]Provider, 0, len(providers)+len(contextProviders))
	index := make(map[Token]int, cap(out))

	add := func(list []Provider) {
		for _, p := range list {
			if i, ok := index[p.Token]; ok {
				out[i].Value = p.Value
				continue
			}
			index[p.Token] = len(out)
			out = append(out, p)
		}
	}
	add(providers)
	add(contextProviders)
	return out
}
