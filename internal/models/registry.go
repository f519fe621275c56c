package models

// Record describes one registered table.
type Record struct {
	Model       any
	Table       string
	VerboseName string
	// PrimaryKey is the storage column name of the key.
	PrimaryKey string
}

var registry = []Record{
	{Model: &KiriTbl{}, Table: "kiri_tble", VerboseName: "切り分けテーブル", PrimaryKey: "子伝票番号"},
	{Model: &HaiinfoTbl{}, Table: "haiinfo_tbl", VerboseName: "配送情報テーブル", PrimaryKey: "伝票番号"},
	{Model: &IntTest{}, Table: "int_test", VerboseName: "整数型テスト", PrimaryKey: "id"},
	{Model: &CharTest{}, Table: "char_test", VerboseName: "文字列テスト", PrimaryKey: "id"},
	{Model: &DateTest{}, Table: "date_test", VerboseName: "日付テスト", PrimaryKey: "id"},
	{Model: &FieldTest{}, Table: "field_test", VerboseName: "フィールドテスト", PrimaryKey: "id"},
	{Model: &NameMst{}, Table: "name_mst", VerboseName: "名称マスタ", PrimaryKey: "コード"},
}

// Registry lists every table this module owns, in migration order.
func Registry() []Record {
	out := make([]Record, len(registry))
	copy(out, registry)
	return out
}

func AllModels() []any {
	out := make([]any, 0, len(registry))
	for _, r := range registry {
		out = append(out, r.Model)
	}
	return out
}

func Lookup(table string) (Record, bool) {
	for _, r := range registry {
		if r.Table == table {
			return r, true
		}
	}
	return Record{}, false
}
