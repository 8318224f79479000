package anthropic

// BuildCachedSystemBlocks constructs a system block with a cache breakpoint.
// The classifier prompt (category guidance plus labeled examples) is the same
// for every task in a run, so after the first request the rest read it from
// the prompt cache.
func BuildCachedSystemBlocks(text string) []SystemBlock {
	return []SystemBlock{
		{
			Text: text,
			CacheControl: &CacheControl{
				TTL: "5m",
			},
		},
	}
}
