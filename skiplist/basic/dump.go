package basic

import (
	"fmt"
	"io"
	"strings"
)

const dumpWidth = 10

// Dump 將每個節點的各層連結輸出成固定寬度的文字，只供人工檢查
func (m *Map[K, V]) Dump(w io.Writer) error {
	var sb strings.Builder
	leading := strings.Repeat(" ", dumpWidth)
	h := int(m.height)

	links := func() {
		sb.WriteString(leading)
		sb.WriteString(strings.Repeat(" |", h))
		sb.WriteByte('\n')
	}

	sb.WriteString(leading)
	sb.WriteString(strings.Repeat(" X", h))
	sb.WriteByte('\n')
	links()

	for x := m.nodes[headIdx].next[0]; x != nilLink; x = m.nodes[x].next[0] {
		nd := &m.nodes[x]
		str := fmt.Sprint(nd.key)
		if len(str) < dumpWidth {
			sb.WriteString(leading[len(str):])
			sb.WriteString(str)
		} else {
			sb.WriteString(str[:dumpWidth])
		}
		sb.WriteString(strings.Repeat("-*", len(nd.next)))
		sb.WriteString(strings.Repeat(" |", h-len(nd.next)))
		sb.WriteByte('\n')
		links()
	}

	sb.WriteString(leading)
	sb.WriteString(strings.Repeat(" O", h))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

// String 依 key 升冪輸出 [(k v) (k v) ...]
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	m.ForEach(func(key K, value V) {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&sb, "(%v %v)", key, value)
	})
	sb.WriteByte(']')
	return sb.String()
}
