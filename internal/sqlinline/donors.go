package sqlinline

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// The donors table carries one column per upload-schema field, so its
// statements are generated from the schema's column list instead of
// being written out by hand. Each statement family keeps a fixed marker.

const (
	markerSelectDonors = "--sql d7a92c45-3e61-4b08-95fa-1c84b6e20d73"
	markerInsertDonors = "--sql 3b5d8e12-76af-4c90-a2e4-9f61c3b80d57"
	markerUpdateDonor  = "--sql a1f47c83-29be-4650-bd16-74e0a8c92f35"
	markerDeleteDonor  = "--sql 58e20b97-c4d6-4f13-8a29-b7f5d0e3a162"
)

// SelectDonors lists donor rows newest first. When owned is true the
// statement takes the owner's user id as $1.
func SelectDonors(columns []string, owned bool) string {
	var sb strings.Builder
	sb.WriteString(markerSelectDonors)
	sb.WriteString("\nselect id, user_id, created_at")
	for _, col := range columns {
		sb.WriteString(", ")
		sb.WriteString(pq.QuoteIdentifier(col))
	}
	sb.WriteString("\nfrom donors\n")
	if owned {
		sb.WriteString("where user_id = $1::uuid\n")
	}
	sb.WriteString("order by created_at desc;")
	return sb.String()
}

// InsertDonors inserts rowCount rows in one statement. Parameters per
// row: user_id first, then one value per column in order.
func InsertDonors(columns []string, rowCount int) string {
	var sb strings.Builder
	sb.WriteString(markerInsertDonors)
	sb.WriteString("\ninsert into donors(id, user_id, created_at")
	for _, col := range columns {
		sb.WriteString(", ")
		sb.WriteString(pq.QuoteIdentifier(col))
	}
	sb.WriteString(")\nvalues")
	width := len(columns) + 1
	for row := 0; row < rowCount; row++ {
		if row > 0 {
			sb.WriteString(",")
		}
		base := row * width
		fmt.Fprintf(&sb, "\n(gen_random_uuid(), $%d::uuid, now()", base+1)
		for i := range columns {
			fmt.Fprintf(&sb, ", $%d", base+2+i)
		}
		sb.WriteString(")")
	}
	sb.WriteString(";")
	return sb.String()
}

// UpdateDonor rewrites every schema column of one row. $1 is the donor
// id; column values follow in order; when owned is true the owner's
// user id comes last and constrains the match.
func UpdateDonor(columns []string, owned bool) string {
	var sb strings.Builder
	sb.WriteString(markerUpdateDonor)
	sb.WriteString("\nupdate donors set ")
	for i, col := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s = $%d", pq.QuoteIdentifier(col), i+2)
	}
	sb.WriteString("\nwhere id = $1::uuid")
	if owned {
		fmt.Fprintf(&sb, " and user_id = $%d::uuid", len(columns)+2)
	}
	sb.WriteString(";")
	return sb.String()
}

// DeleteDonor removes one row by id; the owned variant takes the
// owner's user id as $2.
func DeleteDonor(owned bool) string {
	if owned {
		return markerDeleteDonor + "\ndelete from donors where id = $1::uuid and user_id = $2::uuid;"
	}
	return markerDeleteDonor + "\ndelete from donors where id = $1::uuid;"
}
