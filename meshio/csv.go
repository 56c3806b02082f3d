package meshio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dcrane/isofield/field"
)

// WriteFieldCSV writes d as "x,y,z,v" rows, one per grid point, in
// row-major iteration order (spec.md §6: "CSV export of a field is
// {x,y,z,v} per point").
func WriteFieldCSV(w io.Writer, d *field.Dense) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"x", "y", "z", "v"}); err != nil {
		return err
	}
	for k := 0; k < d.N.NK; k++ {
		for j := 0; j < d.N.NJ; j++ {
			for i := 0; i < d.N.NI; i++ {
				p := d.Point(i, j, k)
				v := d.Data[d.Index(i, j, k)]
				row := []string{
					fmt.Sprintf("%g", p.X),
					fmt.Sprintf("%g", p.Y),
					fmt.Sprintf("%g", p.Z),
					fmt.Sprintf("%g", v),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
