package rates

import "testing"

const sampleResponse = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgr:diffgram xmlns:diffgr="urn:schemas-microsoft-com:xml-diffgram-v1">
          <KeyRate xmlns="">
            <KR diffgr:id="KR1">
              <DT>2026-08-28T00:00:00+03:00</DT>
              <Rate>16.00</Rate>
            </KR>
            <KR diffgr:id="KR2">
              <DT>2026-08-27T00:00:00+03:00</DT>
              <Rate>15.50</Rate>
            </KR>
          </KeyRate>
        </diffgr:diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func TestParseKeyRate(t *testing.T) {
	rate, err := parseKeyRate([]byte(sampleResponse))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The first KR element is the latest published rate.
	if rate != 16.00 {
		t.Fatalf("expected rate 16.00, got %v", rate)
	}
}

func TestParseKeyRateEmpty(t *testing.T) {
	if _, err := parseKeyRate([]byte(`<?xml version="1.0"?><Envelope></Envelope>`)); err == nil {
		t.Fatal("expected error for response without rate data")
	}
}

func TestParseKeyRateInvalidXML(t *testing.T) {
	if _, err := parseKeyRate([]byte("<Envelope><KeyRate>")); err == nil {
		t.Fatal("expected error for invalid XML")
	}
}
