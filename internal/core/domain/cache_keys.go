package domain

// Key prefixes. A mutation invalidates the prefixes its result can affect.
const (
	PrefixAssets      = "assets:"
	PrefixAssetLists  = "assets:list:"
	PrefixPublic      = "public:assets:"
	PrefixReference   = "reference:"
	PrefixSuggestions = "suggestions:"
	PrefixMe          = "auth:me"
)

func AssetKey(id string) string {
	return PrefixAssets + id
}

func AssetListKey(f ListFilter) string {
	return PrefixAssetLists + f.Key()
}

func PublicAssetKey(id string) string {
	return PrefixPublic + id
}

func PublicListKey(f ListFilter) string {
	return PrefixPublic + "list:" + f.Public().Key()
}

func ReferenceKey(kind string) string {
	return PrefixReference + kind
}

func SuggestionsKey(scope string) string {
	return PrefixSuggestions + scope
}
