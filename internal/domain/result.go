package domain

// Result is a named score submitted by a client.
type Result struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Score int32  `db:"score" json:"score"`
}

type ResultTable struct {
	ID    string
	Name  string
	Score string
}

func GetResultTable() ResultTable {
	return ResultTable{
		ID:    "id",
		Name:  "name",
		Score: "score",
	}
}

func (t ResultTable) GetTableName() string {
	return "result"
}
