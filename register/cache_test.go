package register

import (
	"encoding/json"
	"testing"

	"github.com/Moonlight-Companies/givenergy-modbus/common"
)

func TestBulkUpdateAtomicRejectsWholeBatch(t *testing.T) {
	c := NewCache()
	// Seed one valid value so we can prove it survives a later rejected batch.
	if err := c.BulkUpdate(common.BankInput, 59, []uint16{50}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	// BATTERY_PERCENT (IR:59) sanity-checks to [0,256); 9999 fails that check.
	err := c.BulkUpdate(common.BankInput, 59, []uint16{9999})
	if err == nil {
		t.Fatal("expected BulkUpdate to reject an out-of-range value")
	}

	v, ok := c.Get(common.BankInput, 59)
	if !ok || v != 50 {
		t.Fatalf("cache was mutated by a rejected batch: got %v, ok=%v", v, ok)
	}
}

func TestBulkUpdateUnknownIndexRejected(t *testing.T) {
	c := NewCache()
	err := c.BulkUpdate(common.BankHolding, 9999, []uint16{1})
	if err == nil {
		t.Fatal("expected BulkUpdate to reject an index with no descriptor")
	}
}

func TestWriteSafeAllowlist(t *testing.T) {
	if !WriteSafe(HREnableChargeTarget) {
		t.Fatal("ENABLE_CHARGE_TARGET (20) must be write-safe")
	}
	if WriteSafe(179) {
		t.Fatal("register 179 must not be write-safe")
	}
}

func TestTimeConversionTotality(t *testing.T) {
	cases := []struct {
		raw          uint16
		wantHour     int
		wantMinute   int
		wantErr      bool
	}{
		{raw: 430, wantHour: 4, wantMinute: 30},
		{raw: 2400, wantHour: 0, wantMinute: 0},
		{raw: 2360, wantHour: 23, wantMinute: 0},
		{raw: 2500, wantErr: true},
		{raw: 1261, wantErr: true},
	}
	for _, tc := range cases {
		v, err := Time.Convert(tc.raw, ScalingUnity)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Convert(%d): expected error, got %v", tc.raw, v)
			}
			continue
		}
		if err != nil {
			t.Errorf("Convert(%d): unexpected error: %v", tc.raw, err)
			continue
		}
		tm := v.(TimeOfDay)
		if tm.Hour != tc.wantHour || tm.Minute != tc.wantMinute {
			t.Errorf("Convert(%d) = %v, want %02d:%02d", tc.raw, tm, tc.wantHour, tc.wantMinute)
		}
	}
}

func TestCacheJSONRoundTrip(t *testing.T) {
	c := NewCache()
	if err := c.BulkUpdate(common.BankHolding, HREnableChargeTarget, []uint16{1}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}
	if err := c.BulkUpdate(common.BankInput, 59, []uint16{42}); err != nil {
		t.Fatalf("seed update failed: %v", err)
	}

	data, err := c.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	var obj map[string]uint16
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj["HR:20"] != 1 || obj["IR:59"] != 42 {
		t.Fatalf("unexpected JSON shape: %s", data)
	}

	restored := NewCache()
	if err := restored.FromJSON(data); err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if v, ok := restored.Get(common.BankHolding, HREnableChargeTarget); !ok || v != 1 {
		t.Fatalf("restored HR:20 = %v, %v", v, ok)
	}
}

func TestCacheFromJSONAcceptsLegacyParenForm(t *testing.T) {
	restored := NewCache()
	err := restored.FromJSON([]byte(`{"HoldingRegister(20)": 1, "InputRegister(59)": 42}`))
	if err != nil {
		t.Fatalf("FromJSON legacy form: %v", err)
	}
	if v, ok := restored.Get(common.BankHolding, HREnableChargeTarget); !ok || v != 1 {
		t.Fatalf("restored HR:20 = %v, %v", v, ok)
	}
}
