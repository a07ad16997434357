package annotation

import (
	"github.com/leapstack-labs/leapmodel/pkg/core"
	"github.com/leapstack-labs/leapmodel/pkg/olap"
)

func salesModel() *olap.Model {
	return olap.NewModel("sales", core.TableMetadata{
		Name: "sales",
		Columns: []core.Column{
			{Name: "order_id", DataType: core.DataTypeString},
			{Name: "region", DataType: core.DataTypeString},
			{Name: "state", DataType: core.DataTypeString},
			{Name: "city", DataType: core.DataTypeString},
			{Name: "amount", DataType: core.DataTypeNumeric},
			{Name: "quantity", DataType: core.DataTypeNumeric},
			{Name: "cost", DataType: core.DataTypeNumeric},
		},
	})
}

func gamesModel() *olap.Model {
	return olap.NewModel("games", core.TableMetadata{
		Name: "games",
		Columns: []core.Column{
			{Name: "Id", DataType: core.DataTypeNumeric},
			{Name: "Home_Team", DataType: core.DataTypeString},
			{Name: "AwayTeam", DataType: core.DataTypeString},
		},
	})
}
