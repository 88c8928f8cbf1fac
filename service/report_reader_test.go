package service

import (
	"errors"
	"testing"

	"github.com/ludo-technologies/pmdcheck/domain"
)

const samplePmdReport = `<?xml version="1.0" encoding="UTF-8"?>
<pmd version="5.0" timestamp="2024-03-01T10:00:00">
  <file name="src/main/java/com/acme/Main.java">
    <violation beginline="12" endline="12" begincolumn="8" endcolumn="30"
        rule="UnusedImports" ruleset="Import Statement Rules"
        package="com.acme" class="Main" priority="4">
Avoid unused imports such as 'java.util.List'
    </violation>
    <violation beginline="40" endline="55" rule="GodClass" ruleset="Design"
        package="com.acme" class="Main" method="process" priority="1">
Possible God Class
    </violation>
  </file>
  <file name="src/main/java/com/acme/Util.java">
    <violation beginline="3" endline="3" rule="UnusedImports"
        ruleset="Import Statement Rules" package="com.acme" class="Util" priority="4">
Avoid unused imports
    </violation>
  </file>
</pmd>
`

const sampleCpdReport = `<?xml version="1.0" encoding="UTF-8"?>
<pmd-cpd>
  <duplication lines="24" tokens="110">
    <file line="10" path="src/main/java/com/acme/Foo.java"/>
    <file line="42" path="src/main/java/com/acme/Bar.java"/>
    <codefragment><![CDATA[for (int i = 0; i < n; i++) { ... }]]></codefragment>
  </duplication>
</pmd-cpd>
`

func TestReadViolations(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pmd.xml", samplePmdReport)

	findings, err := NewReportReader().Read(domain.KindPMD, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(findings) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(findings))
	}

	// Report order is preserved
	first, ok := findings[0].(domain.RuleViolation)
	if !ok {
		t.Fatalf("expected RuleViolation, got %T", findings[0])
	}
	if first.Rule != "UnusedImports" || first.Class != "Main" || first.BeginLine != 12 {
		t.Errorf("unexpected first violation: %+v", first)
	}
	if first.Priority() != 4 {
		t.Errorf("expected priority 4, got %d", first.Priority())
	}
	if first.Text != "Avoid unused imports such as 'java.util.List'" {
		t.Errorf("violation text should be trimmed, got %q", first.Text)
	}

	second := findings[1].(domain.RuleViolation)
	if second.Rule != "GodClass" || second.Method != "process" || second.Priority() != 1 {
		t.Errorf("unexpected second violation: %+v", second)
	}

	third := findings[2].(domain.RuleViolation)
	if third.File != "src/main/java/com/acme/Util.java" {
		t.Errorf("violation should carry its file path, got %q", third.File)
	}
}

func TestReadDuplications(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cpd.xml", sampleCpdReport)

	findings, err := NewReportReader().Read(domain.KindCPD, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(findings) != 1 {
		t.Fatalf("expected 1 duplication, got %d", len(findings))
	}

	dup, ok := findings[0].(domain.Duplication)
	if !ok {
		t.Fatalf("expected Duplication, got %T", findings[0])
	}
	if dup.Lines != 24 || dup.Tokens != 110 {
		t.Errorf("unexpected duplication size: %+v", dup)
	}
	if len(dup.Files) != 2 || dup.Files[0].Line != 10 || dup.Files[1].Path != "src/main/java/com/acme/Bar.java" {
		t.Errorf("unexpected duplication files: %+v", dup.Files)
	}
	if dup.Identity() != "Foo,Bar" {
		t.Errorf("expected identity Foo,Bar, got %q", dup.Identity())
	}
}

func TestReadEmptyReport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pmd.xml",
		`<?xml version="1.0"?><pmd version="5.0"></pmd>`)

	findings, err := NewReportReader().Read(domain.KindPMD, path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("empty report should yield no findings, got %d", len(findings))
	}
}

func TestReadMalformedReport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pmd.xml", "<pmd><file></pmd>")

	_, err := NewReportReader().Read(domain.KindPMD, path)
	if err == nil {
		t.Fatal("malformed report should fail")
	}
	if !domain.IsReportParse(err) {
		t.Errorf("expected REPORT_PARSE error, got %v", err)
	}
}

func TestReadUnreadableReport(t *testing.T) {
	_, err := NewReportReader().Read(domain.KindPMD, "/nonexistent/pmd.xml")
	if err == nil {
		t.Fatal("unreadable report should fail")
	}
	var de domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrCodeReportRead {
		t.Errorf("expected REPORT_READ error, got %v", err)
	}
}
