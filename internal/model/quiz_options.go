package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MinOptions 每道题至少需要的选项数
const MinOptions = 2

var (
	ErrUnknownOption  = errors.New("option not found")
	ErrTooFewOptions  = errors.New("a question needs at least two options")
	ErrCorrectRemoved = errors.New("the correct option cannot be removed, select another correct answer first")
)

// Option 单个选项，id 是稳定标识，位置不是
type Option struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// OptionMap 规范化后的选项表: {"1": {"id":1,"value":"A"}, ...}
type OptionMap map[int]Option

// OptionsKind 客户端选项载荷的形态
type OptionsKind int

const (
	OptionsNone OptionsKind = iota
	OptionsList
	OptionsMap
	OptionsRawJSON
)

// OptionsInput is the tagged union of the shapes a client may send for
// quiz options: an array, an id-keyed object, or JSON text holding either.
type OptionsInput struct {
	Kind    OptionsKind
	List    []json.RawMessage
	Entries map[string]json.RawMessage
	Raw     string
}

// ParseOptionsInput is the only place that sniffs the payload shape.
// Anything it cannot classify yields OptionsNone.
func ParseOptionsInput(data json.RawMessage) OptionsInput {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return OptionsInput{}
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return OptionsInput{}
		}
		return OptionsInput{Kind: OptionsList, List: list}
	case '{':
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return OptionsInput{}
		}
		return OptionsInput{Kind: OptionsMap, Entries: entries}
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return OptionsInput{}
		}
		return OptionsInput{Kind: OptionsRawJSON, Raw: raw}
	}
	return OptionsInput{}
}

// NormalizeOptions 解析任意形态的选项并转换为规范选项表
func NormalizeOptions(data json.RawMessage) OptionMap {
	return ParseOptionsInput(data).Normalize()
}

// Normalize 转换为规范选项表，无法识别的输入返回空表
func (in OptionsInput) Normalize() OptionMap {
	switch in.Kind {
	case OptionsList:
		return normalizeList(in.List)
	case OptionsMap:
		return normalizeEntries(in.Entries)
	case OptionsRawJSON:
		inner := ParseOptionsInput(json.RawMessage(in.Raw))
		// JSON 字符串只解一层
		if inner.Kind == OptionsRawJSON {
			return OptionMap{}
		}
		return inner.Normalize()
	}
	return OptionMap{}
}

func normalizeList(list []json.RawMessage) OptionMap {
	out := make(OptionMap, len(list))
	for i, item := range list {
		id := i + 1
		_, value := decodeOptionItem(item)
		out[id] = Option{ID: id, Value: value}
	}
	return out
}

func normalizeEntries(entries map[string]json.RawMessage) OptionMap {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sortOptionKeys(keys)

	out := make(OptionMap, len(entries))
	for _, k := range keys {
		embedded, value := decodeOptionItem(entries[k])
		id, ok := embedded, embedded > 0
		if !ok {
			id, ok = parseOptionID(k)
		}
		if !ok {
			continue
		}
		out[id] = Option{ID: id, Value: value}
	}
	return out
}

// decodeOptionItem 支持 "A" 或 {"id":1,"value":"A"}，其它形态的值视为空字符串
func decodeOptionItem(raw json.RawMessage) (int, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0, ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, ""
		}
		return 0, s
	case '{':
		var obj struct {
			ID    json.RawMessage `json:"id"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return 0, ""
		}
		var value string
		if len(obj.Value) > 0 {
			_ = json.Unmarshal(obj.Value, &value)
		}
		id := 0
		if len(obj.ID) > 0 {
			var f FlexInt
			if err := json.Unmarshal(obj.ID, &f); err == nil && f > 0 {
				id = int(f)
			}
		}
		return id, value
	}
	return 0, ""
}

func parseOptionID(s string) (int, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n != math.Trunc(n) || n < 1 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

// 数字键按数值升序，其余按字典序排在后面
func sortOptionKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aok := parseOptionID(keys[i])
		b, bok := parseOptionID(keys[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return keys[i] < keys[j]
		}
	})
}

// Sorted 按 id 升序返回选项列表
func (m OptionMap) Sorted() []Option {
	out := make([]Option, 0, len(m))
	for _, opt := range m {
		out = append(out, opt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m OptionMap) Has(id int) bool {
	_, ok := m[id]
	return ok
}

// IsCorrect 以 id 相等判断，不依赖位置
func (m OptionMap) IsCorrect(id, correct int) bool {
	return m.Has(id) && id == correct
}

// Trimmed 去除每个选项值两端空白
func (m OptionMap) Trimmed() OptionMap {
	out := make(OptionMap, len(m))
	for id, opt := range m {
		out[id] = Option{ID: id, Value: strings.TrimSpace(opt.Value)}
	}
	return out
}

// Compact renumbers the options to 1..N in ascending original-id order.
// The returned id is the new id of the previously correct option; ok is
// false when that option is not part of the map.
func (m OptionMap) Compact(correct int) (OptionMap, int, bool) {
	sorted := m.Sorted()
	remap := make(map[int]int, len(sorted))
	out := make(OptionMap, len(sorted))
	for i, opt := range sorted {
		id := i + 1
		remap[opt.ID] = id
		out[id] = Option{ID: id, Value: opt.Value}
	}
	newCorrect, ok := remap[correct]
	return out, newCorrect, ok
}

// RemoveOption drops one option and compacts the rest. Removing an
// option that would leave fewer than MinOptions is refused.
func (m OptionMap) RemoveOption(id, correct int) (OptionMap, int, bool, error) {
	if !m.Has(id) {
		return nil, 0, false, ErrUnknownOption
	}
	if len(m)-1 < MinOptions {
		return nil, 0, false, ErrTooFewOptions
	}

	rest := make(OptionMap, len(m)-1)
	for k, opt := range m {
		if k != id {
			rest[k] = opt
		}
	}
	out, newCorrect, ok := rest.Compact(correct)
	return out, newCorrect, ok, nil
}
