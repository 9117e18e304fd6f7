package service

import (
	"context"
	"testing"

	"github.com/spec-kit/form-response-service/internal/domain"
)

func TestCreateStartsOpenAndUnassigned(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)

	response, err := f.responses.Create(context.Background(), creator.ID, ResponseCreateInput{FormID: 7})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if response.Status != domain.ResponseStatusOpen {
		t.Fatalf("new response status = %s, want open", response.Status)
	}
	if response.AssignedUserID != nil {
		t.Fatalf("new response has assignee %d", *response.AssignedUserID)
	}
	if response.Data == nil {
		t.Fatal("nil data not defaulted to an empty map")
	}
	if response.CreatedByID != creator.ID {
		t.Fatalf("creator id = %d, want %d", response.CreatedByID, creator.ID)
	}
}

func TestGetDeniedForUnrelatedUser(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	outsider := f.addUser(t, "outsider", false)
	response := f.createResponse(t, creator)

	_, err := f.responses.Get(context.Background(), outsider, response.ID)
	assertCode(t, err, "FORBIDDEN")
}

func TestGetMissingResponse(t *testing.T) {
	f := newFixture(t)
	admin := f.addUser(t, "admin", true)

	_, err := f.responses.Get(context.Background(), admin, 9999)
	assertCode(t, err, "NOT_FOUND")
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)

	bogus := domain.ResponseStatus("archived")
	_, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{Status: &bogus})
	assertCode(t, err, "INVALID_STATUS")

	// rejected patch leaves the record untouched
	current, err := f.responses.Get(context.Background(), creator, response.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != domain.ResponseStatusOpen {
		t.Fatalf("status mutated by rejected patch: %s", current.Status)
	}
}

func TestUpdateRejectsUnknownAssignee(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)

	_, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(4242)})
	assertCode(t, err, "UNKNOWN_ASSIGNEE")

	current, err := f.responses.Get(context.Background(), creator, response.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.AssignedUserID != nil {
		t.Fatalf("assignee set by rejected patch: %d", *current.AssignedUserID)
	}
}

func TestCombinedPatchRejectedWholesale(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)

	// valid status together with an unknown assignee: nothing applies
	_, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{
		Status:         statusPtr(domain.ResponseStatusCompleted),
		AssignedUserID: int64Ptr(4242),
	})
	assertCode(t, err, "UNKNOWN_ASSIGNEE")

	current, err := f.responses.Get(context.Background(), creator, response.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != domain.ResponseStatusOpen || current.AssignedUserID != nil {
		t.Fatalf("partial patch applied: status=%s assignee=%v", current.Status, current.AssignedUserID)
	}
}

func TestAssigneeCannotEdit(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	assignee := f.addUser(t, "assignee", false)
	response := f.createResponse(t, creator)

	if _, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(assignee.ID)}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// the assignee can view the record but not change it
	if _, err := f.responses.Get(context.Background(), assignee, response.ID); err != nil {
		t.Fatalf("assignee blocked from viewing: %v", err)
	}
	_, err := f.responses.Update(context.Background(), assignee, response.ID, ResponsePatch{Status: statusPtr(domain.ResponseStatusCompleted)})
	assertCode(t, err, "FORBIDDEN")
}

func TestAnyValidTransitionAccepted(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	for _, status := range []domain.ResponseStatus{
		domain.ResponseStatusCompleted,
		domain.ResponseStatusOpen,
		domain.ResponseStatusInProgress,
	} {
		updated, err := f.responses.Update(ctx, creator, response.ID, ResponsePatch{Status: statusPtr(status)})
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("status = %s, want %s", updated.Status, status)
		}
	}
}

func TestStatusChangeNotifiesAssigneeNotActor(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	assignee := f.addUser(t, "worker", false)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	if _, err := f.responses.Update(ctx, creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(assignee.ID)}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := f.responses.Update(ctx, creator, response.ID, ResponsePatch{Status: statusPtr(domain.ResponseStatusCompleted)}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	var assignments, statusChanges int
	for _, n := range f.listNotifications(t, assignee.ID) {
		switch n.Kind {
		case domain.NotificationKindAssignment:
			assignments++
		case domain.NotificationKindStatusChange:
			statusChanges++
		}
	}
	if assignments != 1 {
		t.Fatalf("assignee has %d assignment notifications, want 1", assignments)
	}
	if statusChanges != 1 {
		t.Fatalf("assignee has %d status notifications, want 1", statusChanges)
	}

	// the actor never hears about its own change
	if got := len(f.listNotifications(t, creator.ID)); got != 0 {
		t.Fatalf("acting creator received %d notifications, want 0", got)
	}
}

func TestCombinedPatchStatusGoesToPriorAssignee(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	previous := f.addUser(t, "previous", false)
	next := f.addUser(t, "next", false)
	response := f.createResponse(t, creator)
	ctx := context.Background()

	if _, err := f.responses.Update(ctx, creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(previous.ID)}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// one patch that both completes the record and hands it to someone else
	if _, err := f.responses.Update(ctx, creator, response.ID, ResponsePatch{
		Status:         statusPtr(domain.ResponseStatusCompleted),
		AssignedUserID: int64Ptr(next.ID),
	}); err != nil {
		t.Fatalf("combined patch: %v", err)
	}

	countKind := func(userID int64, kind domain.NotificationKind) int {
		count := 0
		for _, n := range f.listNotifications(t, userID) {
			if n.Kind == kind {
				count++
			}
		}
		return count
	}

	// the outgoing assignee hears about the status, the incoming one only
	// about the assignment
	if got := countKind(previous.ID, domain.NotificationKindStatusChange); got != 1 {
		t.Fatalf("prior assignee has %d status notifications, want 1", got)
	}
	if got := countKind(next.ID, domain.NotificationKindStatusChange); got != 0 {
		t.Fatalf("new assignee has %d status notifications, want 0", got)
	}
	if got := countKind(next.ID, domain.NotificationKindAssignment); got != 1 {
		t.Fatalf("new assignee has %d assignment notifications, want 1", got)
	}
	if got := len(f.listNotifications(t, creator.ID)); got != 0 {
		t.Fatalf("acting creator received %d notifications, want 0", got)
	}
}

func TestFirstAssignmentWithStatusNotifiesNobodyOfStatus(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	assignee := f.addUser(t, "worker", false)
	response := f.createResponse(t, creator)

	// unassigned record: a combined patch has no status recipient at all
	if _, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{
		Status:         statusPtr(domain.ResponseStatusInProgress),
		AssignedUserID: int64Ptr(assignee.ID),
	}); err != nil {
		t.Fatalf("combined patch: %v", err)
	}

	listed := f.listNotifications(t, assignee.ID)
	if len(listed) != 1 || listed[0].Kind != domain.NotificationKindAssignment {
		t.Fatalf("expected only the assignment notification, got %+v", listed)
	}
}

func TestSelfAssignmentProducesNoNotification(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "creator", false)
	response := f.createResponse(t, creator)

	if _, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(creator.ID)}); err != nil {
		t.Fatalf("self-assign: %v", err)
	}
	if got := len(f.listNotifications(t, creator.ID)); got != 0 {
		t.Fatalf("self-assignment produced %d notifications", got)
	}
}

func TestAssignmentNotificationText(t *testing.T) {
	f := newFixture(t)
	creator := f.addUser(t, "Alice Smith", false)
	assignee := f.addUser(t, "worker", false)
	response := f.createResponse(t, creator)

	if _, err := f.responses.Update(context.Background(), creator, response.ID, ResponsePatch{AssignedUserID: int64Ptr(assignee.ID)}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	listed := f.listNotifications(t, assignee.ID)
	if len(listed) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(listed))
	}
	want := "You have been assigned to form response #1 by Alice Smith."
	if listed[0].Message != want {
		t.Fatalf("notification text %q, want %q", listed[0].Message, want)
	}
	if listed[0].FormResponseID == nil || *listed[0].FormResponseID != response.ID {
		t.Fatalf("notification not linked to response: %+v", listed[0])
	}
}
