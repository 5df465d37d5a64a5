package icdata_test

import (
	"fmt"

	"github.com/matzehuels/icview/pkg/icdata"
	"github.com/matzehuels/icview/pkg/layout"
	"github.com/matzehuels/icview/pkg/layout/memdb"
)

func ExampleLayerData_Shapes() {
	db := memdb.Open()
	defer db.Close()

	idx, _ := db.AddLayer(layout.LayerInfo{Name: "PIN", Layer: 5, Datatype: 0})
	top, _ := db.AddCell("TOP")
	_, _ = top.AddBox(idx, layout.Point{X: 0, Y: 0}, layout.Point{X: 10, Y: 10})

	pins := icdata.NewLayerData(db, "PIN", 5, 0, "Pin")
	shapes, err := pins.Shapes()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Pins:", shapes["TOP"].Pins)
	fmt.Println("Empty:", shapes["TOP"].IsEmpty())
	// Output:
	// Pins: [[5 5]]
	// Empty: false
}

func ExampleLayerData_Set() {
	db := memdb.Open()
	defer db.Close()
	_, _ = db.AddLayer(layout.LayerInfo{Name: "M1", Layer: 5, Datatype: 0})

	l := icdata.NewLayerData(db, "M1", 5, 0, "drawing")
	fmt.Println(l.Set("name", 42))
	fmt.Println(l.Set("name", "METAL1"), l.Name())
	// Output:
	// INVALID_TYPE: name must be a string, got int
	// <nil> METAL1
}

func ExampleParsePurpose() {
	fmt.Println(icdata.ParsePurpose("Pin-Drawing"))
	fmt.Println(icdata.ParsePurpose("fill"))
	// Output:
	// drawing-pin
	// none
}
