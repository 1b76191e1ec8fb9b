package pipeline

import "testing"

func TestParseHTMLTable(t *testing.T) {
	html := `<html><body>
<p>Data peserta</p>
<table>
<tr><th>NIK</th><th>Nama Lengkap</th><th>Email</th><th>Jenis Kelamin</th><th>No HP</th></tr>
<tr><td>3174012345678901</td><td>Budi  Santoso</td><td>budi@example.com</td><td>L</td><td>0812 3456 7890</td></tr>
</table>
</body></html>`

	res, err := ParseHTMLTable(html, DefaultHeaderScanLines)
	if err != nil {
		t.Fatal(err)
	}
	if res.HeaderRow != 1 || res.DataStartRow != 2 {
		t.Fatalf("headerRow=%d dataStartRow=%d", res.HeaderRow, res.DataStartRow)
	}
	if len(res.Records) != 1 {
		t.Fatalf("records=%d", len(res.Records))
	}
	if res.Records[0].Values["Nama Lengkap"] != "Budi Santoso" {
		t.Fatalf("values=%v", res.Records[0].Values)
	}
}

func TestParseHTMLTableNoTable(t *testing.T) {
	if _, err := ParseHTMLTable("<p>nothing here</p>", DefaultHeaderScanLines); err == nil {
		t.Fatal("expected error")
	}
}
