package query

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// keyNamespace separates engine-generated keys from anything else the cache
// holds for an entity.
const keyNamespace = "q"

// keyHashLen is the hex prefix length kept from the digest: 32 hex chars is
// 128 bits, plenty against accidental collision while keeping keys poolable.
const keyHashLen = 32

// CacheKey canonicalizes and hashes a request into a deterministic cache key
// of the form "<entity>:q:<hash>". Logically identical requests always map to
// the same key regardless of the original wire token order; any semantic
// difference changes the key.
func CacheKey(entity string, req *Request) string {
	sum := sha256.Sum256([]byte(encodeCanonical(req)))
	return entity + ":" + keyNamespace + ":" + hex.EncodeToString(sum[:])[:keyHashLen]
}

// CachePattern returns the wildcard matching every engine key for an entity,
// used for bulk invalidation after a write.
func CachePattern(entity string) string {
	return entity + ":" + keyNamespace + ":*"
}

// encodeCanonical serializes a request into a compact deterministic text
// form. It re-sorts working copies of the order-insensitive parts, so the
// encoding is stable even for a request that skipped Canonicalize. Free text
// folds case because matching is case-insensitive. Every variable-length
// token is length-prefixed, so a client value containing the encoding's own
// delimiters can never read as a structurally different request.
func encodeCanonical(req *Request) string {
	var b strings.Builder

	b.WriteString("q=")
	writeToken(&b, strings.ToLower(strings.TrimSpace(req.FreeText)))

	filters := make([]FilterClause, len(req.Filters))
	copy(filters, req.Filters)
	sort.SliceStable(filters, func(i, j int) bool {
		if filters[i].Field != filters[j].Field {
			return filters[i].Field < filters[j].Field
		}
		return filters[i].Raw < filters[j].Raw
	})
	b.WriteString("|f=")
	for i, f := range filters {
		if i > 0 {
			b.WriteByte('&')
		}
		writeToken(&b, f.Field)
		b.WriteByte('.')
		writeToken(&b, f.Raw)
		b.WriteByte('=')
		writeToken(&b, f.Value)
	}

	b.WriteString("|s=")
	for i, s := range req.Sorts {
		if i > 0 {
			b.WriteByte(',')
		}
		if s.Desc {
			b.WriteByte('-')
		}
		writeToken(&b, s.Field)
	}

	b.WriteString("|fl=")
	writeTokens(&b, sortedCopy(req.Fields))
	b.WriteString("|in=")
	writeTokens(&b, sortedCopy(req.Includes))

	b.WriteString("|p=")
	b.WriteString(strconv.Itoa(req.Page))
	b.WriteString("|ps=")
	b.WriteString(strconv.Itoa(req.PageSize))

	return b.String()
}

// writeToken writes a token as "<len>:<token>". The length prefix keeps the
// encoding injective: no token content can masquerade as a delimiter.
func writeToken(b *strings.Builder, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

func writeTokens(b *strings.Builder, tokens []string) {
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte(',')
		}
		writeToken(b, tok)
	}
}

func sortedCopy(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}
