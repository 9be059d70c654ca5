package config

import (
	"fmt"
	"strings"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UpstreamResponseKey returns the cache key for a raw upstream list body
func (r *CacheKeyStruct) UpstreamResponseKey(path string) string {
	return fmt.Sprintf("upstream:%s:body", strings.Trim(path, "/"))
}

var CacheKey = NewCacheKeyStruct()
