package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/techcrush-lms/storefront-api/models"
)

// GET /admin/orders/export
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Customer").Preload("Items").
			Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"Reference", "Customer", "Email", "Currency", "Subtotal",
			"Shipping", "Discount", "Total", "Coupon", "Provider",
			"Status", "PaymentStatus", "Lines", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.Reference)
			row.AddCell().SetValue(o.Customer.Name)
			row.AddCell().SetValue(o.Customer.Email)
			row.AddCell().SetValue(o.Currency)
			row.AddCell().SetValue(o.Subtotal.String())
			row.AddCell().SetValue(o.ShippingFee.String())
			row.AddCell().SetValue(o.Discount.String())
			row.AddCell().SetValue(o.Total.String())
			row.AddCell().SetValue(o.CouponCode)
			row.AddCell().SetValue(o.Provider)
			row.AddCell().SetValue(string(o.Status))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
