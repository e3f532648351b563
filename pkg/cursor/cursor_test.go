package cursor

import (
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]string{
		{"1"},
		{"1714550400000", "42"},
		{"한글", "a b", "x"},
	}
	for _, parts := range cases {
		encoded := Encode(parts...)
		assert.NotContains(t, encoded, "=")
		decoded, err := Decode(encoded, len(parts))
		require.NoError(t, err)
		assert.Equal(t, parts, decoded)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode("%%%", 1)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Decode(Encode("1", "2"), 1)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = DecodeID(Encode("abc"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Decode("", 1)
	assert.ErrorIs(t, err, ErrInvalid)
}

type row struct {
	at int64
	id uint64
}

func rowKey(r row) []string {
	return []string{strconv.FormatInt(r.at, 10), strconv.FormatUint(r.id, 10)}
}

// fetch 模拟仓储层：按 (at DESC, id DESC) 排序，从游标之后取 limit 条
func fetch(all []row, after *row, limit int) []row {
	var out []row
	for _, r := range all {
		if after != nil && (r.at > after.at || (r.at == after.at && r.id >= after.id)) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

func TestPaginateSizes(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for size := 1; size <= 5; size++ {
			var items []row
			for i := 0; i < total; i++ {
				items = append(items, row{id: uint64(total - i)})
			}
			fetched := items
			if len(fetched) > size+1 {
				fetched = fetched[:size+1]
			}
			page := Paginate(fetched, size, rowKey)
			want := total
			if want > size {
				want = size
			}
			assert.Len(t, page.Items, want)
			assert.Equal(t, total > size, page.NextCursor != nil, "total=%d size=%d", total, size)
		}
	}
}

func TestPaginateNoGapNoDuplicate(t *testing.T) {
	// 大量相同的时间戳，依赖 id 作为第二排序键
	var all []row
	for i := 1; i <= 37; i++ {
		all = append(all, row{at: int64(i / 5), id: uint64(i)})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].at != all[j].at {
			return all[i].at > all[j].at
		}
		return all[i].id > all[j].id
	})

	const size = 4
	var seen []row
	var after *row
	for pages := 0; pages < 100; pages++ {
		page := Paginate(fetch(all, after, size+1), size, rowKey)
		seen = append(seen, page.Items...)
		if page.NextCursor == nil {
			break
		}
		parts, err := Decode(*page.NextCursor, 2)
		require.NoError(t, err)
		at, _ := strconv.ParseInt(parts[0], 10, 64)
		id, _ := strconv.ParseUint(parts[1], 10, 64)
		after = &row{at: at, id: id}
	}
	assert.Equal(t, all, seen)
}
