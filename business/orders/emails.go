package orders

import (
	"fmt"
	"strings"

	"github.com/shakeel7521951/bursa-backend/domain"
	"github.com/shakeel7521951/bursa-backend/pkg/logger"
)

// categoryEmailDetails renders the category-specific list items shared by
// the customer, admin, and transporter emails.
func categoryEmailDetails(order domain.Order) string {
	switch order.ServiceCategory {
	case domain.CategoryPassenger:
		var d domain.PassengerOrder
		if err := order.DecodeDetails(&d); err != nil {
			logger.Warn("Failed to decode passenger order details", err)
			return ""
		}
		return fmt.Sprintf(
			`<li><strong>Locuri rezervate:</strong> %d</li><li><strong>Număr bagaje:</strong> %d</li>`,
			d.SeatsBooked, d.LuggageQuantity)

	case domain.CategoryParcel:
		var d domain.ParcelOrder
		if err := order.DecodeDetails(&d); err != nil {
			logger.Warn("Failed to decode parcel order details", err)
			return ""
		}
		return fmt.Sprintf(
			`<li><strong>Cantitate colete:</strong> %d</li><li><strong>Greutate colete:</strong> %v kg</li>`,
			d.Quantity, d.Weight)

	case domain.CategoryCarTowing:
		var d domain.CarTowingOrder
		if err := order.DecodeDetails(&d); err != nil {
			logger.Warn("Failed to decode car towing order details", err)
			return ""
		}
		return fmt.Sprintf(
			`<li><strong>Detalii vehicul:</strong> %s</li><li><strong>Cerințe tractare:</strong> %s</li>`,
			d.VehicleDetails, d.TowingRequirements)

	case domain.CategoryVehicleTrailer:
		var d domain.TrailerOrder
		if err := order.DecodeDetails(&d); err != nil {
			logger.Warn("Failed to decode trailer order details", err)
			return ""
		}
		return fmt.Sprintf(
			`<li><strong>Tip vehicul:</strong> %s</li><li><strong>Cerințe trailer:</strong> %s</li>`,
			d.VehicleType, d.TrailerRequirements)

	case domain.CategoryFurniture:
		var d domain.FurnitureOrder
		if err := order.DecodeDetails(&d); err != nil {
			logger.Warn("Failed to decode furniture order details", err)
			return ""
		}
		fragile := "Nu"
		if d.FragileItems {
			fragile = "Da"
		}
		return fmt.Sprintf(
			`<li><strong>Număr obiecte:</strong> %d</li><li><strong>Dimensiuni:</strong> %s</li><li><strong>Obiecte fragile:</strong> %s</li>`,
			d.ItemCount, d.Dimensions, fragile)

	case domain.CategoryAnimal:
		var d domain.AnimalOrder
		if err := order.DecodeDetails(&d); err != nil {
			logger.Warn("Failed to decode animal order details", err)
			return ""
		}
		cage := "Nu"
		if d.CageRequired {
			cage = "Da"
		}
		return fmt.Sprintf(
			`<li><strong>Număr animale:</strong> %d</li><li><strong>Tip animal:</strong> %s</li><li><strong>Nevoi speciale:</strong> %s</li><li><strong>Cușcă necesară:</strong> %s</li>`,
			d.AnimalCount, d.AnimalType, d.SpecialNeeds, cage)
	}

	return ""
}

func pickupLabel(pickupOption string) string {
	if pickupOption == "yes" {
		return "Da"
	}
	return "Nu"
}

func tripSummary(detail domain.OrderDetail) string {
	return fmt.Sprintf(
		`<li><strong>Serviciu:</strong> %s</li>
<li><strong>Categorie:</strong> %s</li>
<li><strong>De la:</strong> %s</li>
<li><strong>La:</strong> %s</li>
<li><strong>Data plecării:</strong> %s</li>
<li><strong>Preluare de la domiciliu:</strong> %s</li>
<li><strong>Preț total:</strong> €%v</li>
<li><strong>Status comandă:</strong> %s</li>
<li><strong>Status plată:</strong> %s</li>`,
		detail.Service.ServiceName,
		detail.Order.ServiceCategory,
		detail.Service.DestinationFrom,
		detail.Service.DestinationTo,
		detail.Service.TravelDate.Format("02.01.2006"),
		pickupLabel(detail.Service.PickupOption),
		detail.Order.TotalPrice,
		detail.Order.OrderStatus,
		detail.Order.PaymentStatus,
	)
}

func customerConfirmationEmail(customerName string, detail domain.OrderDetail) (subject, body string) {
	subject = "Confirmare rezervare transport - Bursa Trans România Italia"

	body = fmt.Sprintf(`<p>Bună <strong>%s</strong>,</p>
<p>Îți mulțumim pentru rezervare! Comanda ta a fost înregistrată cu numărul <strong>%s</strong>.</p>
<ul>%s%s</ul>
<p>Te vom anunța imediat ce statusul comenzii se schimbă.</p>
<p>Cu stimă,<br><strong>Echipa Bursa Trans România Italia</strong></p>`,
		customerName, detail.Order.Reference, tripSummary(detail), categoryEmailDetails(detail.Order))

	return subject, body
}

func adminNotificationEmail(customerName string, detail domain.OrderDetail) (subject, body string) {
	subject = fmt.Sprintf("Comandă nouă - %s a rezervat un transport pentru categoria %s",
		customerName, detail.Order.ServiceCategory)

	body = fmt.Sprintf(`<p>O comandă nouă a fost plasată.</p>
<ul><li><strong>Client:</strong> %s</li>%s%s</ul>`,
		customerName, tripSummary(detail), categoryEmailDetails(detail.Order))

	return subject, body
}

func transporterNotificationEmail(customer domain.UserSummary, detail domain.OrderDetail) (subject, body string) {
	subject = fmt.Sprintf("Rezervare nouă pentru serviciul %s", detail.Service.ServiceName)

	body = fmt.Sprintf(`<p>Ați primit o rezervare nouă.</p>
<ul>
<li><strong>Nume client:</strong> %s</li>
<li><strong>Email client:</strong> %s</li>
<li><strong>Telefon client:</strong> %s</li>
%s%s</ul>`,
		customer.Name, customer.Email, customer.Phone,
		tripSummary(detail), categoryEmailDetails(detail.Order))

	return subject, body
}

func statusUpdateEmail(customerName, status string) (subject, body string) {
	statusCapitalized := strings.ToUpper(status[:1]) + status[1:]

	subject = fmt.Sprintf("Actualizare status comandă transport: %s - Bursa Trans România Italia", statusCapitalized)

	body = fmt.Sprintf(`<p>Bună <strong>%s</strong>,</p>
<p>Statusul comenzii dvs. de transport a fost actualizat la: <strong>%s</strong>.</p>
<p>Dacă aveți întrebări, nu ezitați să ne contactați.</p>
<p>Cu stimă,<br><strong>Echipa Bursa Trans România Italia</strong></p>`,
		customerName, statusCapitalized)

	return subject, body
}
