package calendario

import (
	"context"
	"errors"
	"testing"
)

func TestRunBulkAllSucceed(t *testing.T) {
	br := runBulk(context.Background(), []int{1, 2, 3}, func(context.Context, int) error {
		return nil
	})

	if !br.AllSucceeded() || br.Partial() || br.NoneSucceeded() {
		t.Errorf("outcome flags wrong for clean sweep: %+v", br)
	}
	if br.Succeeded != 3 || br.Failed() != 0 {
		t.Errorf("tally: got %d/%d, want 3/0", br.Succeeded, br.Failed())
	}
}

func TestRunBulkPartial(t *testing.T) {
	br := runBulk(context.Background(), []int{1, 2, 3, 4}, func(_ context.Context, id int) error {
		if id%2 == 0 {
			return errors.New("boom")
		}
		return nil
	})

	if !br.Partial() || br.AllSucceeded() || br.NoneSucceeded() {
		t.Errorf("outcome flags wrong for mixed result: %+v", br)
	}
	if br.Succeeded != 2 || br.Failed() != 2 {
		t.Errorf("tally: got %d/%d, want 2/2", br.Succeeded, br.Failed())
	}
	if len(br.Errors) != 2 {
		t.Errorf("errors: got %d, want 2", len(br.Errors))
	}
}

func TestRunBulkNoneSucceed(t *testing.T) {
	br := runBulk(context.Background(), []int{1, 2}, func(context.Context, int) error {
		return errors.New("boom")
	})

	if !br.NoneSucceeded() || br.AllSucceeded() || br.Partial() {
		t.Errorf("outcome flags wrong for total failure: %+v", br)
	}
}

func TestRunBulkEmpty(t *testing.T) {
	br := runBulk(context.Background(), nil, func(context.Context, int) error {
		t.Error("fn should not run for an empty id set")
		return nil
	})

	if br.AllSucceeded() || br.NoneSucceeded() || br.Partial() {
		t.Errorf("empty set should have no outcome flags: %+v", br)
	}
}
