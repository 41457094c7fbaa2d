package words

// builtin 内置词库
var builtin = []Pair{
	// Shops / brands
	{Word: "Asda", Hint: "Shopping"},
	{Word: "Tesco", Hint: "Groceries"},
	{Word: "IKEA", Hint: "Furniture"},
	{Word: "McDonald’s", Hint: "Burger"},
	{Word: "Starbucks", Hint: "Drink"},
	{Word: "Primark", Hint: "Clothes"},
	{Word: "Apple Store", Hint: "Electronics"},
	{Word: "JD Sports", Hint: "Trainers"},
	{Word: "KFC", Hint: "Chicken"},
	{Word: "Subway", Hint: "Sandwich"},

	// Food & drink
	{Word: "Pizza", Hint: "Cheese"},
	{Word: "Sushi", Hint: "Rice"},
	{Word: "Curry", Hint: "Spice"},
	{Word: "Chocolate", Hint: "Sweet"},
	{Word: "Ice cream", Hint: "Cold"},
	{Word: "Noodles", Hint: "Bowl"},
	{Word: "Burger", Hint: "Bun"},
	{Word: "Doughnut", Hint: "Sugar"},
	{Word: "Coffee", Hint: "Caffeine"},
	{Word: "Bubble tea", Hint: "Pearls"},

	// Celebrities
	{Word: "Taylor Swift", Hint: "Concerts"},
	{Word: "Rihanna", Hint: "Makeup"},
	{Word: "Drake", Hint: "Rap"},
	{Word: "Beyoncé", Hint: "Stage"},
	{Word: "Lionel Messi", Hint: "Goals"},
	{Word: "Cristiano Ronaldo", Hint: "Football"},
	{Word: "Ariana Grande", Hint: "High notes"},
	{Word: "Dwayne Johnson", Hint: "Muscles"},
	{Word: "Zendaya", Hint: "Series"},
	{Word: "Tom Holland", Hint: "Spider"},

	// Places
	{Word: "Paris", Hint: "Romance"},
	{Word: "London", Hint: "Rain"},
	{Word: "New York", Hint: "Skyscrapers"},
	{Word: "Tokyo", Hint: "Neon"},
	{Word: "Dubai", Hint: "Luxury"},
	{Word: "Sydney", Hint: "Harbour"},
	{Word: "Maldives", Hint: "Islands"},
	{Word: "Disneyland", Hint: "Rides"},
	{Word: "Wembley Stadium", Hint: "Finals"},
	{Word: "Hollywood", Hint: "Stars"},

	// Objects
	{Word: "iPhone", Hint: "Touchscreen"},
	{Word: "PlayStation", Hint: "Controller"},
	{Word: "Laptop", Hint: "Keyboard"},
	{Word: "Headphones", Hint: "Music"},
	{Word: "Toothbrush", Hint: "Bathroom"},
	{Word: "Backpack", Hint: "Straps"},
	{Word: "Sunglasses", Hint: "Sun"},
	{Word: "AirPods", Hint: "Wireless"},
	{Word: "Wallet", Hint: "Cards"},
	{Word: "Camera", Hint: "Lens"},

	// Jobs
	{Word: "Doctor", Hint: "Checkups"},
	{Word: "Teacher", Hint: "Homework"},
	{Word: "Chef", Hint: "Kitchen"},
	{Word: "Police officer", Hint: "Uniform"},
	{Word: "Nurse", Hint: "Ward"},
	{Word: "Barista", Hint: "Coffee"},
	{Word: "Pilot", Hint: "Cockpit"},
	{Word: "Taxi driver", Hint: "Meter"},
	{Word: "Footballer", Hint: "Pitch"},
	{Word: "Dentist", Hint: "Teeth"},

	// Random fun
	{Word: "Unicorn", Hint: "Horn"},
	{Word: "Dragon", Hint: "Fire"},
	{Word: "Mermaid", Hint: "Tail"},
	{Word: "Spider-Man", Hint: "Web"},
	{Word: "Batman", Hint: "Cape"},
	{Word: "Hogwarts", Hint: "Wands"},
	{Word: "Lightsaber", Hint: "Glow"},
	{Word: "TikTok", Hint: "Scrolling"},
	{Word: "Instagram", Hint: "Stories"},
	{Word: "Netflix", Hint: "Binge"},

	// Animals
	{Word: "Dog", Hint: "Walks"},
	{Word: "Cat", Hint: "Whiskers"},
	{Word: "Elephant", Hint: "Trunk"},
	{Word: "Shark", Hint: "Teeth"},
	{Word: "Lion", Hint: "Roar"},
	{Word: "Penguin", Hint: "Waddle"},
	{Word: "Monkey", Hint: "Bananas"},
	{Word: "Rabbit", Hint: "Ears"},
	{Word: "Snake", Hint: "Slither"},
	{Word: "Dolphin", Hint: "Jump"},

	// Locations / activities
	{Word: "Airport", Hint: "Suitcases"},
	{Word: "Cinema", Hint: "Popcorn"},
	{Word: "Gym", Hint: "Weights"},
	{Word: "Library", Hint: "Shelves"},
	{Word: "Museum", Hint: "Exhibits"},
	{Word: "Beach", Hint: "Sand"},
	{Word: "Mountain", Hint: "Hiking"},
	{Word: "Football stadium", Hint: "Crowd"},
	{Word: "Train station", Hint: "Platform"},
	{Word: "Nightclub", Hint: "Lights"},
}
