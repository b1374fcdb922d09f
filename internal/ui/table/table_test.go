package table

import (
	"bytes"
	"strings"
	"testing"

	rtest "github.com/restic/fhbackup/internal/test"
)

type featureRow struct {
	Name, Type  string
	Default     bool
	Description string
}

func TestTable(t *testing.T) {
	var tests = []struct {
		create func(t testing.TB) *Table
		output string
	}{
		{
			func(t testing.TB) *Table {
				return New()
			},
			"",
		},
		{
			func(t testing.TB) *Table {
				table := New()
				table.AddColumn("Name", "{{ .Name }}")
				table.AddColumn("Type", "{{ .Type }}")
				table.AddColumn("Default", "{{ .Default }}")
				table.AddColumn("Description", "{{ .Description }}")
				table.AddRow(featureRow{"legacy-exit-status", "alpha", false, "always exit with status 0"})
				table.AddRow(featureRow{"numeric-drive-type", "beta", true, "read the drive type as a number"})
				return table
			},
			`
Name                Type   Default  Description
-------------------------------------------------------------------
legacy-exit-status  alpha  false    always exit with status 0
numeric-drive-type  beta   true     read the drive type as a number
-------------------------------------------------------------------
`,
		},
		{
			func(t testing.TB) *Table {
				table := New()
				table.AddColumn("Property", "{{ .Property }}")
				table.AddColumn("Value", "{{ .Value }}")
				table.AddRow(struct{ Property, Value string }{"FH_TARGET_NAME", "备份盘"})
				table.AddRow(struct{ Property, Value string }{"FH_TARGET_URL", `\\server\share`})
				return table
			},
			`
Property        Value
------------------------------
FH_TARGET_NAME  备份盘
FH_TARGET_URL   \\server\share
------------------------------
`,
		},
		{
			func(t testing.TB) *Table {
				table := New()
				table.AddColumn("Check", "{{ .Check }}")
				return table
			},
			`
Check
-----
-----
`,
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			table := test.create(t)
			buf := bytes.NewBuffer(nil)
			err := table.Write(buf)
			if err != nil {
				t.Fatal(err)
			}

			want := strings.TrimLeft(test.output, "\n")
			if buf.String() != want {
				t.Errorf("wrong output\n---- want ---\n%s\n---- got ---\n%s\n-------\n", want, buf.String())
			}
		})
	}
}

func TestTableTemplateError(t *testing.T) {
	table := New()
	table.AddColumn("Check", "{{ .Missing }}")
	table.AddRow(struct{ Check string }{"backup status"})

	var buf bytes.Buffer
	rtest.Assert(t, table.Write(&buf) != nil, "expected error for unknown field")
	rtest.Equals(t, 0, buf.Len())
}

func TestTableInvalidFormat(t *testing.T) {
	defer func() {
		rtest.Assert(t, recover() != nil, "AddColumn did not panic")
	}()
	New().AddColumn("Check", "{{ .Check")
}
