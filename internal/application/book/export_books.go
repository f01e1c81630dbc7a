package book

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ExportBooksUseCase 馆藏目录导出用例(馆员)
// 导出为CSV,字段完整:书名、作者、ISBN、分类、副本台账、馆藏位置
type ExportBooksUseCase struct {
	bookRepo book.Repository
}

// NewExportBooksUseCase 创建馆藏导出用例
func NewExportBooksUseCase(bookRepo book.Repository) *ExportBooksUseCase {
	return &ExportBooksUseCase{bookRepo: bookRepo}
}

// Execute 执行馆藏导出,返回CSV字节流
func (uc *ExportBooksUseCase) Execute(ctx context.Context) ([]byte, error) {
	books, err := uc.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Title", "Author", "ISBN", "Category", "TotalCopies", "AvailableCopies", "Location"}
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(err, "写入CSV表头失败")
	}

	for _, b := range books {
		record := []string{
			b.Title,
			b.Author,
			b.ISBN,
			b.Category,
			strconv.Itoa(b.TotalCopies),
			strconv.Itoa(b.AvailableCopies),
			b.Location,
		}
		if err := w.Write(record); err != nil {
			return nil, apperrors.Wrap(err, "写入CSV记录失败")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(err, "导出馆藏目录失败")
	}

	return buf.Bytes(), nil
}
