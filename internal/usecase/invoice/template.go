package invoice

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// money formats an amount the way the invoice displays it: dollar sign,
// two decimal places.
func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// invoiceRow is one rendered product line.
type invoiceRow struct {
	Name      string
	Quantity  int64
	UnitPrice string
	LineTotal string
}

// invoicePage is the view model for the invoice document.
type invoicePage struct {
	CustomerName  string
	CustomerEmail string
	Date          string
	Rows          []invoiceRow
	Total         string
	Surcharge     string
	GrandTotal    string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Invoice Generator</title>
    <link href="https://cdn.jsdelivr.net/npm/tailwindcss@2.2.19/dist/tailwind.min.css" rel="stylesheet">
</head>
<body class="bg-gray-100">

    <!-- Navbar -->
    <nav class="bg-gray-900 text-white sticky top-0 z-50 p-4 flex justify-between items-center">
        <div class="flex items-center">
            <span class="text-xl font-bold">Invoice Generator</span>
        </div>
    </nav>

    <!-- Customer Info Section -->
    <div class="bg-gray-800 text-white p-6 mt-4">
        <div class="flex justify-between">
            <div>
                <p class="text-lg font-semibold">Name: {{.CustomerName}}</p>
                <p>Email: {{.CustomerEmail}}</p>
            </div>
            <div>
                <p>Date: {{.Date}}</p>
            </div>
        </div>
    </div>

    <!-- Products Table -->
    <div class="container mx-auto mt-8">
        <table class="min-w-full bg-white border border-gray-300">
            <thead class="bg-gray-200">
                <tr>
                    <th class="py-3 px-6 text-left text-sm font-medium text-gray-900">Product</th>
                    <th class="py-3 px-6 text-left text-sm font-medium text-gray-900">Quantity</th>
                    <th class="py-3 px-6 text-left text-sm font-medium text-gray-900">Rate</th>
                    <th class="py-3 px-6 text-left text-sm font-medium text-gray-900">Total</th>
                </tr>
            </thead>
            <tbody>
{{- range .Rows}}
                <tr>
                    <td class="py-4 px-6 border-b">{{.Name}}</td>
                    <td class="py-4 px-6 border-b">{{.Quantity}}</td>
                    <td class="py-4 px-6 border-b">{{.UnitPrice}}</td>
                    <td class="py-4 px-6 border-b">{{.LineTotal}}</td>
                </tr>
{{- end}}
            </tbody>
        </table>
    </div>

    <!-- Total and GST Section -->
    <div class="container mx-auto mt-6 p-4 bg-white border border-gray-300">
        <div class="flex justify-end">
            <div class="w-1/2">
                <div class="flex justify-between py-2">
                    <span class="text-gray-700">Total Amount:</span>
                    <span class="text-gray-900 font-semibold">{{.Total}}</span>
                </div>
                <div class="flex justify-between py-2">
                    <span class="text-gray-700">GST (5%):</span>
                    <span class="text-gray-900 font-semibold">{{.Surcharge}}</span>
                </div>
                <div class="flex justify-between py-2 border-t mt-2">
                    <span class="text-lg font-bold text-gray-700">Amount to be Paid:</span>
                    <span class="text-lg font-bold text-gray-900">{{.GrandTotal}}</span>
                </div>
            </div>
        </div>
    </div>
</body>
</html>
`))

// buildHTML produces the invoice document for a generation request. Line
// totals are quantity x unit price; the summary block uses the
// caller-supplied total with a fixed 5% surcharge on top.
func buildHTML(in GenerateRequest, now time.Time) (string, error) {
	page := invoicePage{
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		Date:          now.Format("1/2/2006"),
		Total:         money(in.TotalPrice),
		Surcharge:     money(in.TotalPrice * 0.05),
		GrandTotal:    money(in.TotalPrice * 1.05),
	}

	for _, item := range in.Items {
		page.Rows = append(page.Rows, invoiceRow{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money(item.Price),
			LineTotal: money(float64(item.Quantity) * item.Price),
		})
	}

	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, page); err != nil {
		return "", fmt.Errorf("failed to execute invoice template: %w", err)
	}
	return b.String(), nil
}
