package form

import "testing"

func TestCheckStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	calls := 0
	counting := func(string) (string, bool) { calls++; return "never", false }

	fe := Check("email", "", Required(""), counting)
	if fe == nil || fe.Reason != MsgRequired {
		t.Fatalf("Check() = %v, want required error", fe)
	}
	if calls != 0 {
		t.Errorf("rule after the failing one ran %d times", calls)
	}
	if fe := Check("email", "a@b.co", Required(""), Email(MsgEmail)); fe != nil {
		t.Errorf("Check() = %v, want nil", fe)
	}
}

func TestLoginFormValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		form LoginForm
		want Errors
	}{
		{"valid", LoginForm{Email: "me@example.com", Password: "password1"}, Errors{}},
		{"empty", LoginForm{}, Errors{"email": MsgRequired, "password": MsgRequired}},
		{"no at", LoginForm{Email: "example.com", Password: "password1"}, Errors{"email": MsgEmail}},
		{"short password", LoginForm{Email: "me@example.com", Password: "short"}, Errors{"password": MsgPasswordLen}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.form.Validate()
			assertErrors(t, got, tt.want)
		})
	}
}

func TestRegisterFormRequiresName(t *testing.T) {
	t.Parallel()
	got := RegisterForm{Email: "me@example.com", Password: "password1", Name: "  "}.Validate()
	assertErrors(t, got, Errors{"name": MsgRequired})
}

func TestMovieFormValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		form        MovieForm
		want        Errors
		wantRating  float64
		wantRanking int
	}{
		{"valid", MovieForm{RatingRaw: "7.5", Review: "Great film", RankingRaw: "3"}, Errors{}, 7.5, 3},
		{"bounds", MovieForm{RatingRaw: "10", Review: "ok", RankingRaw: "1"}, Errors{}, 10, 1},
		{"rating too high", MovieForm{RatingRaw: "11", Review: "ok", RankingRaw: "3"}, Errors{"rating": MsgRating}, 0, 3},
		{"rating too low", MovieForm{RatingRaw: "0.5", Review: "ok", RankingRaw: "3"}, Errors{"rating": MsgRating}, 0, 3},
		{"rating not a number", MovieForm{RatingRaw: "great", Review: "ok", RankingRaw: "3"}, Errors{"rating": MsgDecimal}, 0, 3},
		{"ranking out of range", MovieForm{RatingRaw: "5", Review: "ok", RankingRaw: "11"},
			Errors{"ranking": "Number must be between 1 and 10."}, 5, 0},
		{"ranking not whole", MovieForm{RatingRaw: "5", Review: "ok", RankingRaw: "2.5"}, Errors{"ranking": MsgInteger}, 5, 0},
		{"all missing", MovieForm{}, Errors{"rating": MsgRequired, "review": MsgRequired, "ranking": MsgRequired}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.form
			assertErrors(t, f.Validate(), tt.want)
			if f.Rating != tt.wantRating || f.Ranking != tt.wantRanking {
				t.Errorf("parsed rating=%v ranking=%d, want %v %d", f.Rating, f.Ranking, tt.wantRating, tt.wantRanking)
			}
		})
	}
}

func TestSearchFormValidate(t *testing.T) {
	t.Parallel()
	assertErrors(t, SearchForm{Search: ""}.Validate(), Errors{"search": MsgRequired})
	assertErrors(t, SearchForm{Search: "Inception"}.Validate(), Errors{})
}

func assertErrors(t *testing.T, got, want Errors) {
	t.Helper()
	if got.OK() != want.OK() || len(got) != len(want) {
		t.Fatalf("errors = %v, want %v", got, want)
	}
	for field, reason := range want {
		if got.Get(field) != reason {
			t.Errorf("%s = %q, want %q", field, got.Get(field), reason)
		}
	}
}
