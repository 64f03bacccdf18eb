package email

// SendWelcomeEmail sends a welcome email to a newly registered diner.
func (c *Client) SendWelcomeEmail(to, name string) error {
	data := map[string]string{
		"Name": name,
	}

	return c.SendEmail(
		to,
		"Welcome to Forkpoint!",
		TemplateWelcome,
		data,
	)
}

// SendOrderReceipt sends an order confirmation with the charged total.
func (c *Client) SendOrderReceipt(to, name, orderID, total string) error {
	data := map[string]string{
		"Name":    name,
		"OrderID": orderID,
		"Total":   total,
	}

	return c.SendEmail(
		to,
		"Your Forkpoint order receipt",
		TemplateReceipt,
		data,
	)
}
