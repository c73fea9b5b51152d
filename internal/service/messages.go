package service

import "fmt"

// Activity message formats shown in the community feed.

func donationMessage(userName string, quantity int64, plantName string) string {
	return fmt.Sprintf("%s is willing to donate %d %s plant%s",
		userName, quantity, plantName, plural(quantity))
}

func swapMessage(userName string, needQuantity int64, needPlant string, haveQuantity int64, havePlant string) string {
	return fmt.Sprintf("%s wants %d %s plant%s in exchange for %d %s plant%s",
		userName, needQuantity, needPlant, plural(needQuantity),
		haveQuantity, havePlant, plural(haveQuantity))
}

func blogMessage(userName, title string) string {
	return fmt.Sprintf("%s published a new blog: %q", userName, title)
}

func saleMessage(userName string, amount int64, plantName string, price float64) string {
	return fmt.Sprintf("%s listed %d pcs of %s for sale at %g Tk",
		userName, amount, plantName, price)
}

func plural(n int64) string {
	if n > 1 {
		return "s"
	}
	return ""
}
