package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"junket/internal/domain"
	"junket/internal/repository"
)

// SharingRepository is a PostgreSQL implementation of
// repository.SharingRepository. The sharing summary lives in trip_sharing
// and the per-agent breakdown in trip_agent_shares.
type SharingRepository struct {
	q Querier
}

// NewSharingRepository creates a new PostgreSQL sharing repository.
func NewSharingRepository(db *sql.DB) *SharingRepository {
	return &SharingRepository{q: db}
}

// NewSharingRepositoryWithTx creates a sharing repository using a database
// transaction.
func NewSharingRepositoryWithTx(tx *sql.Tx) *SharingRepository {
	return &SharingRepository{q: tx}
}

// Upsert inserts or replaces the sharing row for the trip, upserts the new
// breakdown rows, and removes breakdown rows for agents no longer present.
func (r *SharingRepository) Upsert(ctx context.Context, sharing *domain.TripSharing) error {
	query := `
		INSERT INTO trip_sharing
			(trip_id, total_win_loss, total_expenses, total_rolling_commission,
			 total_buy_in, total_buy_out, net_cash_flow, net_result,
			 total_agent_share, company_share, agent_share_percentage,
			 company_share_percentage, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (trip_id) DO UPDATE SET
			total_win_loss = EXCLUDED.total_win_loss,
			total_expenses = EXCLUDED.total_expenses,
			total_rolling_commission = EXCLUDED.total_rolling_commission,
			total_buy_in = EXCLUDED.total_buy_in,
			total_buy_out = EXCLUDED.total_buy_out,
			net_cash_flow = EXCLUDED.net_cash_flow,
			net_result = EXCLUDED.net_result,
			total_agent_share = EXCLUDED.total_agent_share,
			company_share = EXCLUDED.company_share,
			agent_share_percentage = EXCLUDED.agent_share_percentage,
			company_share_percentage = EXCLUDED.company_share_percentage,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.q.ExecContext(ctx, query,
		sharing.TripID,
		sharing.TotalWinLoss,
		sharing.TotalExpenses,
		sharing.TotalRollingCommission,
		sharing.TotalBuyIn,
		sharing.TotalBuyOut,
		sharing.NetCashFlow,
		sharing.NetResult,
		sharing.TotalAgentShare,
		sharing.CompanyShare,
		sharing.AgentSharePercentage,
		sharing.CompanySharePercentage,
		sharing.UpdatedAt,
	)
	if err != nil {
		return err
	}

	keep := make([]string, 0, len(sharing.AgentBreakdown))
	for _, share := range sharing.AgentBreakdown {
		keep = append(keep, share.AgentID)

		shareQuery := `
			INSERT INTO trip_agent_shares (trip_id, agent_id, commission_rate, share_amount)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (trip_id, agent_id) DO UPDATE SET
				commission_rate = EXCLUDED.commission_rate,
				share_amount = EXCLUDED.share_amount
		`
		if _, err := r.q.ExecContext(ctx, shareQuery,
			sharing.TripID,
			share.AgentID,
			share.CommissionRate,
			share.ShareAmount,
		); err != nil {
			return err
		}
	}

	// Drop breakdown rows for agents that left the trip.
	deleteQuery := `DELETE FROM trip_agent_shares WHERE trip_id = $1 AND agent_id != ALL($2)`
	if _, err := r.q.ExecContext(ctx, deleteQuery, sharing.TripID, pq.Array(keep)); err != nil {
		return err
	}

	return nil
}

// GetByTripID retrieves the sharing row and its breakdown.
func (r *SharingRepository) GetByTripID(ctx context.Context, tripID string) (*domain.TripSharing, error) {
	query := `
		SELECT trip_id, total_win_loss, total_expenses, total_rolling_commission,
		       total_buy_in, total_buy_out, net_cash_flow, net_result,
		       total_agent_share, company_share, agent_share_percentage,
		       company_share_percentage, updated_at
		FROM trip_sharing WHERE trip_id = $1
	`

	var sharing domain.TripSharing
	err := r.q.QueryRowContext(ctx, query, tripID).Scan(
		&sharing.TripID,
		&sharing.TotalWinLoss,
		&sharing.TotalExpenses,
		&sharing.TotalRollingCommission,
		&sharing.TotalBuyIn,
		&sharing.TotalBuyOut,
		&sharing.NetCashFlow,
		&sharing.NetResult,
		&sharing.TotalAgentShare,
		&sharing.CompanyShare,
		&sharing.AgentSharePercentage,
		&sharing.CompanySharePercentage,
		&sharing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	shares, err := r.ListAgentShares(ctx, tripID)
	if err != nil {
		return nil, err
	}
	sharing.AgentBreakdown = shares

	return &sharing, nil
}

// ListAgentShares retrieves the persisted breakdown rows for a trip.
func (r *SharingRepository) ListAgentShares(ctx context.Context, tripID string) ([]domain.AgentShare, error) {
	query := `
		SELECT agent_id, commission_rate, share_amount
		FROM trip_agent_shares WHERE trip_id = $1
		ORDER BY agent_id
	`

	rows, err := r.q.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.AgentShare
	for rows.Next() {
		var share domain.AgentShare
		if err := rows.Scan(&share.AgentID, &share.CommissionRate, &share.ShareAmount); err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}

	return shares, rows.Err()
}

// Ensure SharingRepository implements repository.SharingRepository.
var _ repository.SharingRepository = (*SharingRepository)(nil)
