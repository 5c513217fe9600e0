package ecommerce

// ---------------------------------------------------------------------------
// Fulfillment Operations
// ---------------------------------------------------------------------------

const fulfillmentOrdersQuery = `
query FulfillmentOrders($orderId: ID!, $first: Int!, $after: String) {
  order(id: $orderId) {
    fulfillmentOrders(first: $first, after: $after) {
      pageInfo { hasNextPage endCursor }
      edges {
        node {
          id
          assignedLocation {
            location { id name }
          }
        }
      }
    }
  }
}`

const fulfillmentOrderMoveMutation = `
mutation FulfillmentOrderMove($fulfillmentOrderId: ID!, $newLocationId: ID!) {
  fulfillmentOrderMove(id: $fulfillmentOrderId, newLocationId: $newLocationId) {
    movedFulfillmentOrder {
      id
      assignedLocation {
        location { id name }
      }
    }
    originalFulfillmentOrder { id }
    remainingFulfillmentOrder { id }
    userErrors { field message }
  }
}`

// ---------------------------------------------------------------------------
// Company Operations
// ---------------------------------------------------------------------------

const customerCompanyQuery = `
query CustomerCompany($id: ID!) {
  customer(id: $id) {
    displayName
    email
    metafield(namespace: "custom", key: "rep_code") { value }
    companyContactProfiles {
      id
      company {
        id
        name
        externalId
        metafield(namespace: "custom", key: "rep_codes") { value }
        locations(first: 50) { nodes { id name shippingAddress { formattedAddress } } }
      }
    }
  }
}`

const repCompaniesQuery = `
query ListRepCompanies($query: String!) {
  companies(first: 250, query: $query) {
    edges {
      node {
        id
        name
        externalId
        locations(first: 50) { nodes { id name shippingAddress { formattedAddress } } }
      }
    }
  }
}`

const customerContactProfilesQuery = `
query CustomerContactProfiles($id: ID!) {
  customer(id: $id) {
    companyContactProfiles { id }
  }
}`

const companyContactRemoveMutation = `
mutation RemoveCustomerFromCompany($companyContactId: ID!) {
  companyContactRemoveFromCompany(companyContactId: $companyContactId) {
    removedCompanyContactId
    userErrors { field message }
  }
}`

const companyAssignCustomerMutation = `
mutation AssignCustomerAsContact($companyId: ID!, $customerId: ID!) {
  companyAssignCustomerAsContact(companyId: $companyId, customerId: $customerId) {
    companyContact { id }
    userErrors { field message }
  }
}`
