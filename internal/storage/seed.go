package storage

import (
	"context"
	"time"

	"taskflow/internal/models"
)

// Seed loads the demo fixture into an empty store. It is a no-op when any
// members already exist, so repeated starts with -seed stay idempotent.
func Seed(ctx context.Context, s Store) error {
	existing, err := s.ReadMembers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	h := func(hoursAgo int) time.Time { return now.Add(-time.Duration(hoursAgo) * time.Hour) }
	ref := func(s string) *string { return &s }

	members := []models.TeamMember{
		{ID: "m1", Name: "Alice Chen", Email: "alice@devops.io", Active: true},
		{ID: "m2", Name: "Bob Martinez", Email: "bob@devops.io", Active: true},
		{ID: "m3", Name: "Carol Kim", Email: "carol@devops.io", Active: true},
		{ID: "m4", Name: "Dan Wilson", Email: "dan@devops.io", Active: true},
		{ID: "m5", Name: "Eve Johnson", Email: "eve@devops.io", Active: false},
		{ID: "m6", Name: "Frank Lee", Email: "frank@devops.io", Active: true},
	}

	tasks := []models.Task{
		{
			ID: "t1", Title: "Set up CI/CD pipeline",
			Description: "Configure GitHub Actions for automated testing and deployment to staging.",
			Status:      models.StatusInProgress, Priority: models.PriorityHigh,
			AssigneeID: ref("m1"), AssigneeName: ref("Alice Chen"), GearID: "1024",
			SubTasks: []models.SubTask{
				{ID: "s1", Title: "Create workflow YAML", Completed: true, Position: 0, CreatedAt: h(72)},
				{ID: "s2", Title: "Add test stage", Completed: true, Position: 1, CreatedAt: h(72)},
				{ID: "s3", Title: "Add deploy stage", Completed: false, Position: 2, CreatedAt: h(72)},
			},
			DailyUpdates: []models.DailyUpdate{
				{ID: "u1", TaskID: "t1", AuthorID: "m1", AuthorName: "Alice Chen", Content: "Workflow YAML created, test stage passing.", CreatedAt: h(4), UpdatedAt: h(4)},
			},
			CreatedAt: h(72), UpdatedAt: h(4),
		},
		{
			ID: "t2", Title: "Database migration stuck",
			Description: "Production DB migration failing on step 3 due to timeout.",
			Status:      models.StatusBlocked, Priority: models.PriorityHigh,
			AssigneeID: ref("m2"), AssigneeName: ref("Bob Martinez"), GearID: "2048",
			BlockingReason: "Waiting for DBA approval to increase migration timeout from 30s to 120s. Ticket submitted to infrastructure team.",
			SubTasks: []models.SubTask{
				{ID: "s4", Title: "Identify failing migration", Completed: true, Position: 0, CreatedAt: h(120)},
				{ID: "s5", Title: "Request timeout increase", Completed: true, Position: 1, CreatedAt: h(120)},
				{ID: "s6", Title: "Re-run migration", Completed: false, Position: 2, CreatedAt: h(120)},
			},
			DailyUpdates: []models.DailyUpdate{
				{ID: "u2", TaskID: "t2", AuthorID: "m2", AuthorName: "Bob Martinez", Content: "Submitted ticket to infra team for timeout change.", CreatedAt: h(26), UpdatedAt: h(26)},
			},
			CreatedAt: h(120), UpdatedAt: h(2),
		},
		{
			ID: "t3", Title: "Monitoring dashboard alerts",
			Description: "Set up Grafana alerts for CPU, memory, and disk usage on all prod nodes.",
			Status:      models.StatusToDo, Priority: models.PriorityMedium,
			AssigneeID: ref("m3"), AssigneeName: ref("Carol Kim"), GearID: "3072",
			SubTasks: []models.SubTask{
				{ID: "s7", Title: "Define alert thresholds", Completed: false, Position: 0, CreatedAt: h(48)},
				{ID: "s8", Title: "Configure Grafana panels", Completed: false, Position: 1, CreatedAt: h(48)},
			},
			DailyUpdates: []models.DailyUpdate{},
			CreatedAt:    h(48), UpdatedAt: h(48),
		},
		{
			ID: "t4", Title: "Container image optimization",
			Description: "Reduce Docker image sizes for all microservices by switching to Alpine base.",
			Status:      models.StatusDone, Priority: models.PriorityLow,
			AssigneeID: ref("m4"), AssigneeName: ref("Dan Wilson"), GearID: "4096",
			SubTasks: []models.SubTask{
				{ID: "s9", Title: "Audit current image sizes", Completed: true, Position: 0, CreatedAt: h(336)},
				{ID: "s10", Title: "Switch to Alpine", Completed: true, Position: 1, CreatedAt: h(336)},
				{ID: "s11", Title: "Verify all tests pass", Completed: true, Position: 2, CreatedAt: h(336)},
			},
			DailyUpdates: []models.DailyUpdate{
				{ID: "u3", TaskID: "t4", AuthorID: "m4", AuthorName: "Dan Wilson", Content: "All images reduced by ~60%. Tests passing.", CreatedAt: h(200), UpdatedAt: h(200)},
			},
			CreatedAt: h(336), UpdatedAt: h(200),
		},
		{
			ID: "t5", Title: "SSL certificate renewal",
			Description: "Renew wildcard SSL certificates before expiry on March 15.",
			Status:      models.StatusBlocked, Priority: models.PriorityMedium,
			AssigneeID: ref("m6"), AssigneeName: ref("Frank Lee"), GearID: "5120",
			BlockingReason: "Certificate authority requires domain ownership re-verification. Waiting on DNS TXT record update from domain registrar support.",
			SubTasks: []models.SubTask{
				{ID: "s12", Title: "Submit renewal request", Completed: true, Position: 0, CreatedAt: h(168)},
				{ID: "s13", Title: "Complete domain verification", Completed: false, Position: 1, CreatedAt: h(168)},
				{ID: "s14", Title: "Install new certificate", Completed: false, Position: 2, CreatedAt: h(168)},
			},
			DailyUpdates: []models.DailyUpdate{
				{ID: "u4", TaskID: "t5", AuthorID: "m6", AuthorName: "Frank Lee", Content: "Contacted registrar support, ETA 2 business days.", CreatedAt: h(6), UpdatedAt: h(3), Edited: true},
			},
			CreatedAt: h(168), UpdatedAt: h(3),
		},
		{
			ID: "t6", Title: "Log aggregation setup",
			Description: "Deploy ELK stack for centralized logging across all services.",
			Status:      models.StatusInProgress, Priority: models.PriorityLow,
			SubTasks: []models.SubTask{
				{ID: "s15", Title: "Deploy Elasticsearch", Completed: true, Position: 0, CreatedAt: h(96)},
				{ID: "s16", Title: "Configure Logstash", Completed: false, Position: 1, CreatedAt: h(96)},
				{ID: "s17", Title: "Set up Kibana dashboards", Completed: false, Position: 2, CreatedAt: h(96)},
			},
			DailyUpdates: []models.DailyUpdate{},
			CreatedAt:    h(96), UpdatedAt: h(24),
		},
	}

	if err := s.WriteMembers(ctx, members); err != nil {
		return err
	}
	return s.WriteTasks(ctx, tasks)
}
