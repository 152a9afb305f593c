package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

func TestRetentionNoClients(t *testing.T) {
	r := NewEngine(WithClock(fixedClock)).Retention(models.Dataset{})

	assert.Equal(t, 0, r.TotalClients)
	assert.Equal(t, 0.0, r.RetentionRate)
	assert.Equal(t, 0.0, r.AverageDaysBetweenVisits)
	assert.Empty(t, r.TopReturningClients)
}

func TestRetention(t *testing.T) {
	once := newClient("Once", day(time.September, 1, 9))
	twice := newClient("Twice", day(time.September, 1, 9))
	thrice := newClient("Thrice", day(time.September, 1, 9))
	never := newClient("Never", day(time.September, 2, 9))

	data := models.Dataset{
		Clients: []models.Client{once, twice, thrice, never},
		Visits: []models.BusinessVisit{
			newVisit(&once, "A", day(time.September, 5, 10)),
			newVisit(&twice, "B", day(time.September, 14, 10)),
			newVisit(&twice, "B", day(time.September, 10, 10)),
			newVisit(&thrice, "C", day(time.September, 1, 10)),
			newVisit(&thrice, "C", day(time.September, 3, 10)),
			newVisit(&thrice, "C", day(time.September, 9, 10)),
			newVisit(nil, "Walk-in", day(time.September, 9, 10)),
		},
	}

	r := NewEngine(WithClock(fixedClock)).Retention(data)

	assert.Equal(t, 4, r.TotalClients)
	assert.Equal(t, 2, r.ClientsWithMultipleVisits)
	assert.Equal(t, 50.0, r.RetentionRate)
	// gaps: 4 (twice), 2 and 6 (thrice)
	assert.InDelta(t, 4.0, r.AverageDaysBetweenVisits, 1e-9)

	require.Len(t, r.ClientVisitCounts, 4)
	assert.Equal(t, 1, r.ClientVisitCounts[0].VisitCount)
	assert.Equal(t, day(time.September, 14, 10), r.ClientVisitCounts[1].LastVisit)
	assert.Equal(t, 0, r.ClientVisitCounts[3].VisitCount)
	assert.Equal(t, never.CreatedAt, r.ClientVisitCounts[3].LastVisit)

	assert.Equal(t, []models.ReturningClient{
		{Name: "Thrice", Count: 3},
		{Name: "Twice", Count: 2},
	}, r.TopReturningClients)
}

func TestRetentionTopFiveOnly(t *testing.T) {
	var data models.Dataset
	for i := 0; i < 7; i++ {
		c := newClient(fmt.Sprintf("Client %d", i), day(time.August, 1, 9))
		data.Clients = append(data.Clients, c)
		for v := 0; v < i+2; v++ {
			data.Visits = append(data.Visits, newVisit(&c, "x", day(time.August, 2+v, 9)))
		}
	}

	r := NewEngine(WithClock(fixedClock)).Retention(data)

	require.Len(t, r.TopReturningClients, 5)
	assert.Equal(t, "Client 6", r.TopReturningClients[0].Name)
	assert.Equal(t, 8, r.TopReturningClients[0].Count)
	assert.Equal(t, "Client 2", r.TopReturningClients[4].Name)
	assert.Equal(t, 100.0, r.RetentionRate)
	assert.LessOrEqual(t, r.RetentionRate, 100.0)
}
