package jumper

import "testing"

func TestRecordLanding(t *testing.T) {
	tests := []struct {
		name       string
		id, last   SequenceID
		wantScored bool
	}{
		{"sentinel", SentinelID, 4, false},
		{"same platform", 4, 4, false},
		{"new platform", 5, 4, true},
		{"first platform", 1, SentinelID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScoreState(10)
			if got := s.RecordLanding(tt.id, tt.last); got != tt.wantScored {
				t.Errorf("RecordLanding(%d, %d) = %v, want %v", tt.id, tt.last, got, tt.wantScored)
			}
			want := 0
			if tt.wantScored {
				want = 1
			}
			if s.Score() != want {
				t.Errorf("Score() = %d, want %d", s.Score(), want)
			}
		})
	}
}

func TestLevelFollowsScore(t *testing.T) {
	s := NewScoreState(10)
	last := SentinelID
	for id := SequenceID(1); id <= 35; id++ {
		if !s.RecordLanding(id, last) {
			t.Fatalf("landing on %d not scored", id)
		}
		last = id
		if s.Level() != s.Score()/10 {
			t.Fatalf("score %d: Level() = %d, want %d", s.Score(), s.Level(), s.Score()/10)
		}
	}
	if s.Score() != 35 || s.Level() != 3 {
		t.Errorf("final score/level = %d/%d, want 35/3", s.Score(), s.Level())
	}

	s.Reset()
	if s.Score() != 0 || s.Level() != 0 {
		t.Errorf("after Reset score/level = %d/%d", s.Score(), s.Level())
	}
}
