package cmd

import "testing"

func TestResolveSeason(t *testing.T) {
	cases := []struct {
		flag, cfg int
		want      int
		wantErr   bool
	}{
		{flag: 5, cfg: 3, want: 5},
		{flag: 0, cfg: 3, want: 3},
		{flag: 5, cfg: 0, want: 5},
		{flag: 0, cfg: 0, wantErr: true},
	}
	for _, c := range cases {
		got, err := resolveSeason(c.flag, c.cfg)
		if c.wantErr {
			if err == nil {
				t.Errorf("resolveSeason(%d, %d): expected error", c.flag, c.cfg)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveSeason(%d, %d): %v", c.flag, c.cfg, err)
			continue
		}
		if got != c.want {
			t.Errorf("resolveSeason(%d, %d) = %d, want %d", c.flag, c.cfg, got, c.want)
		}
	}
}
