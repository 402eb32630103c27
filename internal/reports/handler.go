package reports

import (
	"database/sql"
	"time"

	"github.com/richardamare/cloudfarmsales/internal/database"
	"github.com/richardamare/cloudfarmsales/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CountStat is one dashboard card backed by a row count.
type CountStat struct {
	CurrentCount     int64      `json:"currentCount"`
	PercentageChange Percentage `json:"percentageChange"`
	Label            string     `json:"percentageChangeLabel"`
}

// TotalStat is one dashboard card backed by a sum, in minor units.
type TotalStat struct {
	CurrentTotal     int64      `json:"currentTotal"`
	PercentageChange Percentage `json:"percentageChange"`
	Label            string     `json:"percentageChangeLabel"`
}

type DashboardResponse struct {
	Customers   CountStat `json:"customers"`
	Sales       CountStat `json:"sales"`
	Revenue     TotalStat `json:"revenue"`
	DocQuantity TotalStat `json:"docQuantity"`
}

// GET /api/reports/dashboard
func DashboardHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := buildDashboardReport(NewReportRange(time.Now()))
		if err != nil {
			log.Error("failed to get dashboard reports", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to get dashboard reports: "+err.Error())
		}

		return c.JSON(resp)
	}
}

// buildDashboardReport computes the four comparative aggregates over
// non-deleted rows. Separated from the handler so the window can be
// pinned in tests.
func buildDashboardReport(rng ReportRange) (*DashboardResponse, error) {
	customers, err := countStat(&models.Customer{}, rng)
	if err != nil {
		return nil, err
	}
	sales, err := countStat(&models.Sale{}, rng)
	if err != nil {
		return nil, err
	}
	revenue, err := totalStat("doc_quantity * doc_unit_price", rng)
	if err != nil {
		return nil, err
	}
	docQuantity, err := totalStat("doc_quantity", rng)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Customers:   *customers,
		Sales:       *sales,
		Revenue:     *revenue,
		DocQuantity: *docQuantity,
	}, nil
}

func countStat(model interface{}, rng ReportRange) (*CountStat, error) {
	current, err := countBetween(model, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	previous, err := countBetween(model, rng.PreviousStart, rng.PreviousEnd)
	if err != nil {
		return nil, err
	}

	pct := PercentageChange(float64(current), float64(previous))
	return &CountStat{
		CurrentCount:     current,
		PercentageChange: pct,
		Label:            pct.Label(),
	}, nil
}

func totalStat(expr string, rng ReportRange) (*TotalStat, error) {
	current, currentOK, err := sumSalesBetween(expr, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}
	previous, previousOK, err := sumSalesBetween(expr, rng.PreviousStart, rng.PreviousEnd)
	if err != nil {
		return nil, err
	}

	// an aggregate query with no row at all defaults the whole card to zero
	if !currentOK || !previousOK {
		return &TotalStat{CurrentTotal: 0, PercentageChange: 0, Label: Percentage(0).Label()}, nil
	}

	pct := PercentageChange(float64(current), float64(previous))
	return &TotalStat{
		CurrentTotal:     current,
		PercentageChange: pct,
		Label:            pct.Label(),
	}, nil
}

func countBetween(model interface{}, start, end time.Time) (int64, error) {
	var count int64
	err := database.DB.Model(model).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Count(&count).Error
	return count, err
}

// sumSalesBetween returns (0, false, nil) when the query produces no row.
// A NULL sum (matching rows exist in neither window but the row itself is
// returned) is treated as zero, which keeps the division unguarded.
func sumSalesBetween(expr string, start, end time.Time) (int64, bool, error) {
	row := database.DB.Model(&models.Sale{}).
		Select("SUM("+expr+")").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Row()

	var total sql.NullInt64
	if err := row.Scan(&total); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	if !total.Valid {
		return 0, true, nil
	}
	return total.Int64, true, nil
}

// GET /api/reports/yearly-sales
func YearlySalesHandler(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []monthTotal

		query := `
			SELECT trim(to_char(date_trunc('month', created_at), 'Mon')) AS month,
			       SUM(doc_quantity * doc_unit_price) AS total
			FROM sales
			WHERE date_trunc('year', created_at) = date_trunc('year', CURRENT_DATE)
			  AND deleted_at IS NULL
			GROUP BY month
		`

		if err := database.DB.Raw(query).Scan(&rows).Error; err != nil {
			log.Error("failed to get yearly sales", zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "failed to get yearly sales: "+err.Error())
		}

		return c.JSON(fiber.Map{"sales": fillYearlySeries(rows)})
	}
}
