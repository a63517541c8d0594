package handlers

import (
	"kindra-backend/application/ports"
	"kindra-backend/application/queries"
	"kindra-backend/application/queries/bus"
	"kindra-backend/application/services"
	"kindra-backend/domain/analytics"
)

// RegisterAll wires every query handler into the bus
func RegisterAll(
	b *bus.QueryBus,
	connections ports.ConnectionRepository,
	moments ports.MomentRepository,
	cycles ports.CycleRepository,
	insights *services.InsightService,
	clock analytics.Clock,
) error {
	insightHandler := NewInsightQueryHandler(insights, clock)

	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.ListConnectionsQuery{}, queries.NewListConnectionsHandler(connections)},
		{queries.GetConnectionQuery{}, queries.NewGetConnectionHandler(connections)},
		{queries.ListMomentsQuery{}, queries.NewListMomentsHandler(moments)},
		{queries.ListCyclesQuery{}, queries.NewListCyclesHandler(cycles)},
		{queries.GetAnalyticsInsightsQuery{}, insightHandler},
		{queries.GetConnectionInsightsQuery{}, insightHandler},
		{queries.GetCycleVariabilityQuery{}, insightHandler},
		{queries.PredictOptimalTimingQuery{}, insightHandler},
	}
	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
