package services

import (
	"context"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"assethub/src/schemas"
	"assethub/src/utils"
)

// ExportService renders the report and the asset list into downloadable
// files. It is thin I/O glue over the query services.
type ExportService struct {
	reports *ReportService
	assets  *AssetService
}

func NewExportService(reports *ReportService, assets *AssetService) *ExportService {
	return &ExportService{reports: reports, assets: assets}
}

var reportHeader = []string{"Category", "Total", "Assigned", "Available", "Not available", "Waiting for recycling", "Recycled"}

// ReportXLSX renders the unpaged report as an Excel workbook.
func (s *ExportService) ReportXLSX(ctx context.Context) (*excelize.File, error) {
	rows, err := s.reports.Rows(ctx)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := "Report"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{row.CategoryName, row.Total, row.Assigned, row.Available, row.NotAvailable, row.Waiting, row.Recycled}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return file, nil
}

// ReportCSV writes the unpaged report as CSV.
func (s *ExportService) ReportCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.reports.Rows(ctx)
	if err != nil {
		return err
	}

	df := dataframe.LoadStructs(rows)
	if df.Error() != nil {
		return fmt.Errorf("failed to build report dataframe: %w", df.Error())
	}
	return df.WriteCSV(w)
}

var assetHeader = []string{"Code", "Name", "Category", "Location", "Installed date", "Status"}

// assetExportRow flattens an asset view into export-friendly columns.
type assetExportRow struct {
	Code          string
	Name          string
	Category      string
	Location      string
	InstalledDate string
	Status        string
}

func (s *ExportService) assetRows(ctx context.Context, f schemas.AssetFilter) ([]assetExportRow, error) {
	assets, err := s.assets.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}

	rows := make([]assetExportRow, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, assetExportRow{
			Code:          a.Code,
			Name:          a.Name,
			Category:      a.CategoryName,
			Location:      a.LocationName,
			InstalledDate: a.InstalledDate.Format(utils.ShortDashDateLayout),
			Status:        a.StatusLabel,
		})
	}
	return rows, nil
}

// AssetsXLSX renders the filtered asset list as an Excel workbook.
func (s *ExportService) AssetsXLSX(ctx context.Context, f schemas.AssetFilter) (*excelize.File, error) {
	rows, err := s.assetRows(ctx, f)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := "Assets"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, title := range assetHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{row.Code, row.Name, row.Category, row.Location, row.InstalledDate, row.Status}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return file, nil
}

// AssetsCSV writes the filtered asset list as CSV.
func (s *ExportService) AssetsCSV(ctx context.Context, w io.Writer, f schemas.AssetFilter) error {
	rows, err := s.assetRows(ctx, f)
	if err != nil {
		return err
	}

	df := dataframe.LoadStructs(rows)
	if df.Error() != nil {
		return fmt.Errorf("failed to build asset dataframe: %w", df.Error())
	}
	return df.WriteCSV(w)
}
